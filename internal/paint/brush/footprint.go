package brush

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/gpaint/pkg/geom"
)

// Footprint is the circular screen area covered by the brush for one sample.
type Footprint struct {
	Center geom.Vec2
	Radius int
}

// NewFootprint sizes the footprint for a sample, scaling the radius by
// pressure when the brush asks for it.
func NewFootprint(cfg *Config, s Sample) Footprint {
	r := cfg.Size
	if cfg.UsePressureSize {
		r = int(float32(cfg.Size) * s.Pressure)
	}
	return Footprint{Center: geom.Vec2{X: s.X, Y: s.Y}, Radius: max(r, 0)}
}

// Pixel returns the rounded brush center.
func (f Footprint) Pixel() geom.Pixel {
	return f.Center.Round()
}

// Widen returns a footprint with the radius scaled by factor.
func (f Footprint) Widen(factor float32) Footprint {
	return Footprint{Center: f.Center, Radius: int(float32(f.Radius) * factor)}
}

// BoundingRect returns the inclusive square [center-radius, center+radius].
func (f Footprint) BoundingRect() geom.Rect {
	return geom.RectAround(f.Pixel(), f.Radius)
}

// CollisionRect returns the rectangle used to reject whole strokes. It is
// padded to the circumscribed square's diagonal so corners never produce a
// false negative.
func (f Footprint) CollisionRect() geom.Rect {
	r := float32(f.Radius)
	return geom.RectAround(f.Pixel(), int(math32.Ceil(math32.Sqrt(2*r*r))))
}

// Distance returns the distance from the rounded brush center to p.
func (f Footprint) Distance(p geom.Pixel) float32 {
	return f.Pixel().Distance(p)
}

// PointInRadius reports whether p lies within the brush circle.
func (f Footprint) PointInRadius(p geom.Pixel) bool {
	return f.Distance(p) <= float32(f.Radius)
}

// SegmentIntersects reports whether the closed segment a-b passes within the
// brush circle.
func (f Footprint) SegmentIntersects(a, b geom.Pixel) bool {
	return geom.SegmentInsideCircle(f.Center, float32(f.Radius), a, b)
}
