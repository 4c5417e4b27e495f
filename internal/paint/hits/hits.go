// Package hits finds the stroke points under the brush for one frame.
package hits

import (
	"github.com/Faultbox/gpaint/pkg/geom"
	"github.com/Faultbox/gpaint/pkg/gpdata"
)

// FillIndex marks a hit on a stroke's fill region instead of a point.
const FillIndex = -1

// FillRepeat is how many fill hits are synthesized when the cursor is inside
// a filled stroke. Fill has no discrete points, so the repetition lets tint
// converge at a rate comparable to stroke points.
const FillRepeat = 50

// Hit is a point under the brush together with the attribute values it had
// before the current brush-apply call.
type Hit struct {
	Stroke      *gpdata.Stroke // authoring stroke, mutated by the tools
	StrokeIndex int            // index of the stroke in its frame
	Index       int            // point index in Stroke, or FillIndex
	Pos         geom.Pixel     // screen position

	Color  gpdata.Color // point (or fill) color snapshot
	Weight float32      // active group weight snapshot
}

// IsFill reports whether the hit targets the fill region.
func (h *Hit) IsFill() bool {
	return h.Index == FillIndex
}

// Point returns the target point. It must not be called on fill hits.
func (h *Hit) Point() *gpdata.Point {
	return &h.Stroke.Points[h.Index]
}

// Key identifies a point within one frame.
type Key struct {
	Stroke int
	Point  int
}

// Key returns the frame-local identity of the hit's point.
func (h *Hit) Key() Key {
	return Key{Stroke: h.StrokeIndex, Point: h.Index}
}

// SpaceConverter projects a layer-space point into screen pixels.
// It reports false when the point cannot be projected.
type SpaceConverter interface {
	ToScreen(p geom.Vec3, layer geom.Mat4) (geom.Pixel, bool)
}

// Neighbors receives every point found inside the search circle.
type Neighbors interface {
	Insert(h Hit)
}
