package main

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/Faultbox/gpaint/internal/paint/session"
	"github.com/Faultbox/gpaint/pkg/gpdata"
)

// pointRow is one line of the point report.
type pointRow struct {
	Layer     string  `csv:"layer"`
	Frame     int     `csv:"frame"`
	Stroke    int     `csv:"stroke"`
	Point     int     `csv:"point"`
	X         float32 `csv:"x"`
	Y         float32 `csv:"y"`
	Z         float32 `csv:"z"`
	R         float32 `csv:"r"`
	G         float32 `csv:"g"`
	B         float32 `csv:"b"`
	A         float32 `csv:"a"`
	Weights   string  `csv:"weights"`
	WeightSum float32 `csv:"weight_sum"`
}

func reportRows(doc *gpdata.Document) []*pointRow {
	var rows []*pointRow
	for _, l := range doc.Layers {
		for _, f := range l.Frames {
			for si, st := range f.Strokes {
				for pi, p := range st.Points {
					rows = append(rows, &pointRow{
						Layer:     l.Name,
						Frame:     f.Number,
						Stroke:    si,
						Point:     pi,
						X:         p.Pos.X,
						Y:         p.Pos.Y,
						Z:         p.Pos.Z,
						R:         p.Color.R,
						G:         p.Color.G,
						B:         p.Color.B,
						A:         p.Color.A,
						Weights:   formatWeights(doc, p.Weights),
						WeightSum: weightSum(p.Weights),
					})
				}
			}
		}
	}
	return rows
}

// formatWeights renders weights as "name=value" pairs sorted by group index.
func formatWeights(doc *gpdata.Document, w gpdata.Weights) string {
	sorted := w.Clone()
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Group < sorted[j].Group })

	parts := make([]string, 0, len(sorted))
	for _, dw := range sorted {
		name := strconv.Itoa(dw.Group)
		if dw.Group >= 0 && dw.Group < len(doc.VertexGroups) {
			name = doc.VertexGroups[dw.Group].Name
		}
		parts = append(parts, name+"="+strconv.FormatFloat(float64(dw.Weight), 'f', 4, 32))
	}
	return strings.Join(parts, ";")
}

func weightSum(w gpdata.Weights) float32 {
	var s float32
	for _, dw := range w {
		s += dw.Weight
	}
	return s
}

func writeReport(w io.Writer, doc *gpdata.Document) error {
	return gocsv.Marshal(reportRows(doc), w)
}

func writeStats(w io.Writer, stats session.Stats) error {
	return gocsv.Marshal([]session.Stats{stats}, w)
}
