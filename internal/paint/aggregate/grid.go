// Package aggregate builds the per-call spatial summaries the paint tools
// read: a fixed cell grid of colors for smearing, a nearest-neighbor point
// cloud for weight blur and smear, and plain means over the hit buffer.
package aggregate

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/gpaint/internal/paint/brush"
	"github.com/Faultbox/gpaint/internal/paint/hits"
	"github.com/Faultbox/gpaint/pkg/geom"
	"github.com/Faultbox/gpaint/pkg/gpdata"
)

// CellSize is the default grid cell edge in pixels.
const CellSize = 10

// compassThreshold is sin(22.5°): direction components below it round to 0,
// which splits the circle into eight compass sectors.
const compassThreshold = 0.38268343

// Cell is one grid square. Corners are offsets from the brush center.
type Cell struct {
	Bottom, Top geom.Vec2
	Color       gpdata.RGB
	Count       int
}

// Grid partitions the brush footprint into square cells, row-major from the
// top row down and left to right, each holding the mean color of its hits.
type Grid struct {
	CellSize float32

	center geom.Vec2
	size   int
	cells  []Cell
}

// NewGrid creates an empty grid.
func NewGrid(cellSize float32) *Grid {
	if cellSize <= 0 {
		cellSize = CellSize
	}
	return &Grid{CellSize: cellSize}
}

// Size returns the number of cells per row and column.
func (g *Grid) Size() int {
	return g.size
}

// Cells returns the cells in row-major order.
func (g *Grid) Cells() []Cell {
	return g.cells
}

// Build lays out empty cells over the footprint, reusing storage.
func (g *Grid) Build(fp brush.Footprint) {
	g.center = fp.Center
	g.size = int(math32.Ceil(2*float32(fp.Radius)/g.CellSize)) + 1
	n := g.size * g.size
	if cap(g.cells) < n {
		g.cells = make([]Cell, n)
	}
	g.cells = g.cells[:n]

	rect := fp.BoundingRect()
	left := float32(rect.MinX) - fp.Center.X
	bottom := float32(rect.MaxY) - g.CellSize - fp.Center.Y

	i := 0
	for row := 0; row < g.size; row++ {
		x := left
		for col := 0; col < g.size; col++ {
			g.cells[i] = Cell{
				Bottom: geom.Vec2{X: x, Y: bottom},
				Top:    geom.Vec2{X: x + g.CellSize, Y: bottom + g.CellSize},
			}
			x += g.CellSize
			i++
		}
		bottom -= g.CellSize
	}
}

// Populate accumulates the snapshot colors of point hits with visible alpha
// and turns each cell's sum into a mean.
func (g *Grid) Populate(hs []hits.Hit) {
	for i := range hs {
		h := &hs[i]
		if h.IsFill() || h.Color.A <= 0 {
			continue
		}
		idx := g.CellIndex(h.Pos)
		if idx < 0 {
			continue
		}
		c := &g.cells[idx]
		c.Color = c.Color.Add(h.Color.RGB())
		c.Count++
	}
	for i := range g.cells {
		if c := &g.cells[i]; c.Count > 0 {
			c.Color = c.Color.Scale(1 / float32(c.Count))
		}
	}
}

// CellIndex returns the cell containing p, or -1. Grids are small, so this is
// a linear scan.
func (g *Grid) CellIndex(p geom.Pixel) int {
	off := p.Vec2().Sub(g.center)
	for i := range g.cells {
		c := &g.cells[i]
		if off.X >= c.Bottom.X && off.X <= c.Top.X && off.Y >= c.Bottom.Y && off.Y <= c.Top.Y {
			return i
		}
	}
	return -1
}

// Compass quantizes a direction to one of eight unit steps.
func Compass(dir geom.Vec2) (dx, dy int) {
	d := dir.Normalize()
	return compassStep(d.X), compassStep(d.Y)
}

func compassStep(v float32) int {
	switch {
	case v >= compassThreshold:
		return 1
	case v <= -compassThreshold:
		return -1
	}
	return 0
}

// Upstream returns the mean color of the cell one compass step behind p
// along the brush motion dir. It reports false when p is outside the grid or
// the cell holds no color.
func (g *Grid) Upstream(p geom.Pixel, dir geom.Vec2) (gpdata.RGB, bool) {
	idx := g.CellIndex(p)
	if idx < 0 {
		return gpdata.RGB{}, false
	}
	dx, dy := Compass(dir)
	row, col := idx/g.size, idx%g.size
	// rows run top to bottom, so moving up means the source is a row below
	col = clampInt(col-dx, 0, g.size-1)
	row = clampInt(row+dy, 0, g.size-1)

	c := &g.cells[row*g.size+col]
	if c.Count == 0 {
		return gpdata.RGB{}, false
	}
	return c.Color, true
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
