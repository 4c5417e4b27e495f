// Package tools implements the per-point paint operations. One Applier is
// chosen per brush session; it reads only the pre-call snapshots stored in
// the hits, so the order in which hits are applied does not matter.
package tools

import (
	"fmt"

	"github.com/Faultbox/gpaint/internal/paint/aggregate"
	"github.com/Faultbox/gpaint/internal/paint/brush"
	"github.com/Faultbox/gpaint/internal/paint/hits"
	"github.com/Faultbox/gpaint/pkg/geom"
	"github.com/Faultbox/gpaint/pkg/gpdata"
)

const (
	// SearchWiden scales the search radius of the neighbor-based weight tools.
	SearchWiden = 1.3

	// fillFactor scales fill influence, which is applied once per
	// synthesized fill hit.
	fillFactor = 0.02

	blurNeighbors  = 5
	smearNeighbors = 8
)

// Needs describes what a tool requires from point selection.
type Needs struct {
	Fill    bool // synthesize fill hits
	Nearest bool // widen the search and feed the nearest-neighbor cloud
}

// Applier paints one tool.
type Applier interface {
	// Needs reports the selection inputs the tool reads.
	Needs(cfg *brush.Config) Needs
	// Prepare builds per-frame aggregates from ctx.Hits.
	Prepare(ctx *Context)
	// Apply paints one hit with the given influence and reports whether
	// the stroke changed.
	Apply(ctx *Context, h *hits.Hit, inf float32) bool
}

// For returns the applier for a tool.
func For(t brush.Tool) (Applier, error) {
	switch t {
	case brush.Tint:
		return tint{}, nil
	case brush.Replace:
		return replace{}, nil
	case brush.Blur:
		return blur{}, nil
	case brush.Average:
		return average{}, nil
	case brush.Smear:
		return smear{}, nil
	case brush.WeightDraw:
		return weightDraw{}, nil
	case brush.WeightBlur:
		return weightBlur{}, nil
	case brush.WeightAverage:
		return weightAverage{}, nil
	case brush.WeightSmear:
		return weightSmear{}, nil
	}
	return nil, fmt.Errorf("%w: %v", brush.ErrUnknownTool, t)
}

// Context is the state shared by every hit of one frame pass.
type Context struct {
	Brush     *brush.Config
	Influence brush.Influence
	Invert    bool
	First     bool      // no previous sample in this stroke
	Direction geom.Vec2 // normalized brush motion, zero when unknown
	Group     int       // active vertex group, -1 for color tools
	Hits      []hits.Hit

	Grid    *aggregate.Grid
	Nearest *aggregate.Nearest

	colors     aggregate.ColorStats
	meanWeight float32
	hasMean    bool
	found      []aggregate.Neighbor
}

// NewContext allocates the aggregates a session reuses across calls.
func NewContext(cfg *brush.Config, group int) *Context {
	return &Context{
		Brush:   cfg,
		Group:   group,
		Grid:    aggregate.NewGrid(aggregate.CellSize),
		Nearest: aggregate.NewNearest(),
	}
}

// Reset clears per-frame aggregates, keeping their storage.
func (c *Context) Reset() {
	c.Hits = nil
	c.Nearest.Reset()
	c.colors = aggregate.ColorStats{}
	c.meanWeight, c.hasMean = 0, false
	c.found = c.found[:0]
}

// FillInfluence is the influence of one fill hit.
func (c *Context) FillInfluence() float32 {
	return gpdata.Clamp01(c.Influence.Base * fillFactor * c.Influence.FrameScale)
}

// ink is the brush color without alpha.
func (c *Context) ink() gpdata.RGB {
	return c.Brush.Color.RGB()
}

func clampedDelta(a, inf float32, invert bool) float32 {
	if invert {
		return gpdata.Clamp01(a - inf)
	}
	return gpdata.Clamp01(a + inf)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
