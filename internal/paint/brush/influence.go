package brush

import (
	"github.com/Faultbox/gpaint/pkg/curve"
	"github.com/Faultbox/gpaint/pkg/geom"
)

// Influence turns a point's screen position into a strength in [0,1].
type Influence struct {
	Base       float32 // strength, times pressure when pressure-sensitive
	Footprint  Footprint
	Curve      *curve.Curve
	FrameScale float32 // multi-frame falloff, 1 for the active frame
}

// NewInfluence builds the influence model for one sample.
func NewInfluence(cfg *Config, fp Footprint, s Sample) Influence {
	base := cfg.Strength
	if cfg.UsePressureStrength {
		base *= s.Pressure
	}
	return Influence{
		Base:       base,
		Footprint:  fp,
		Curve:      cfg.Curve(),
		FrameScale: 1,
	}
}

// WithFrameScale returns a copy using the given multi-frame falloff.
func (in Influence) WithFrameScale(f float32) Influence {
	in.FrameScale = f
	return in
}

// Spatial returns the influence at p ignoring multi-frame falloff.
func (in Influence) Spatial(p geom.Pixel) float32 {
	d := in.Footprint.Distance(p)
	return clamp(in.Base * in.Curve.Strength(d, float32(in.Footprint.Radius)))
}

// At returns the influence at p.
func (in Influence) At(p geom.Pixel) float32 {
	return clamp(in.Spatial(p) * in.FrameScale)
}

func clamp(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
