package aggregate

import (
	"github.com/Faultbox/gpaint/internal/paint/hits"
	"github.com/Faultbox/gpaint/pkg/gpdata"
)

// ColorStats is a running sum of colors.
type ColorStats struct {
	Sum   gpdata.RGB
	Count int
}

// Add includes c when its alpha is visible.
func (s *ColorStats) Add(c gpdata.Color) {
	if c.A <= 0 {
		return
	}
	s.Sum = s.Sum.Add(c.RGB())
	s.Count++
}

// Mean returns the mean color.
func (s ColorStats) Mean() (gpdata.RGB, bool) {
	if s.Count == 0 {
		return gpdata.RGB{}, false
	}
	return s.Sum.Scale(1 / float32(s.Count)), true
}

// MeanExcluding returns the mean of every other color, leaving out own,
// which must have been added.
func (s ColorStats) MeanExcluding(own gpdata.Color) (gpdata.RGB, bool) {
	if own.A <= 0 {
		return s.Mean()
	}
	if s.Count <= 1 {
		return gpdata.RGB{}, false
	}
	return s.Sum.Sub(own.RGB()).Scale(1 / float32(s.Count-1)), true
}

// PointColors sums the snapshot colors of point hits.
func PointColors(hs []hits.Hit) ColorStats {
	var s ColorStats
	for i := range hs {
		if !hs[i].IsFill() {
			s.Add(hs[i].Color)
		}
	}
	return s
}

// MixedColors sums point colors and, once per stroke, the fill color of
// strokes hit through their fill.
func MixedColors(hs []hits.Hit) ColorStats {
	var s ColorStats
	var last *gpdata.Stroke
	for i := range hs {
		h := &hs[i]
		if !h.IsFill() {
			s.Add(h.Color)
			continue
		}
		if h.Stroke != last {
			s.Add(h.Color)
			last = h.Stroke
		}
	}
	return s
}

// MeanWeight returns the mean snapshot weight of point hits.
func MeanWeight(hs []hits.Hit) (float32, bool) {
	var sum float32
	n := 0
	for i := range hs {
		if hs[i].IsFill() {
			continue
		}
		sum += hs[i].Weight
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float32(n), true
}
