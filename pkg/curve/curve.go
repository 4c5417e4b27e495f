// Package curve provides the one-dimensional falloff curves used for brush
// distance falloff and multi-frame falloff.
package curve

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/interp"
)

// ErrBadCurve is returned for control points that cannot define a curve.
var ErrBadCurve = errors.New("curve: invalid control points")

// Preset selects a built-in falloff shape.
type Preset int

const (
	Smooth Preset = iota
	Smoother
	Sphere
	Root
	Sharp
	Linear
	Pow4
	InvSquare
	Constant
	Custom
)

var presetNames = map[Preset]string{
	Smooth:    "smooth",
	Smoother:  "smoother",
	Sphere:    "sphere",
	Root:      "root",
	Sharp:     "sharp",
	Linear:    "linear",
	Pow4:      "pow4",
	InvSquare: "invsquare",
	Constant:  "constant",
	Custom:    "custom",
}

// String returns the preset name used in configuration files.
func (p Preset) String() string {
	if n, ok := presetNames[p]; ok {
		return n
	}
	return fmt.Sprintf("preset(%d)", int(p))
}

// ParsePreset converts a configuration name to a Preset.
func ParsePreset(name string) (Preset, error) {
	for p, n := range presetNames {
		if n == name {
			return p, nil
		}
	}
	return Smooth, fmt.Errorf("curve: unknown preset %q", name)
}

// Point is a curve control point. X and Y are in [0,1].
type Point struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// Curve maps a normalized distance in [0,1] to a strength in [0,1].
//
// Presets are expressed over closeness (1 - distance) so that every preset
// returns 1 at the center and 0 at the rim. Custom curves are sampled directly
// at the normalized distance.
type Curve struct {
	preset Preset
	points []Point
	pred   interp.Predictor
}

// NewPreset returns a curve with a built-in shape.
// Custom is not a valid argument; use New for control points.
func NewPreset(p Preset) *Curve {
	if p == Custom {
		p = Smooth
	}
	return &Curve{preset: p}
}

// New builds a custom curve through the given control points.
// X values must be strictly increasing; at least two points are required.
func New(points []Point) (*Curve, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, got %d", ErrBadCurve, len(points))
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		if i > 0 && p.X <= points[i-1].X {
			return nil, fmt.Errorf("%w: x not strictly increasing at point %d", ErrBadCurve, i)
		}
		xs[i] = float64(p.X)
		ys[i] = float64(p.Y)
	}

	var fp interp.FittablePredictor
	if len(points) >= 3 {
		// Monotone cubic keeps plateaus flat and never overshoots.
		fp = &interp.FritschButland{}
	} else {
		fp = &interp.PiecewiseLinear{}
	}
	if err := fp.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCurve, err)
	}

	pts := make([]Point, len(points))
	copy(pts, points)
	return &Curve{preset: Custom, points: pts, pred: fp}, nil
}

// Preset returns the curve's shape.
func (c *Curve) Preset() Preset {
	return c.preset
}

// Points returns a copy of the control points of a custom curve.
func (c *Curve) Points() []Point {
	out := make([]Point, len(c.points))
	copy(out, c.points)
	return out
}

// Eval returns the curve value at normalized distance x, clamped to [0,1].
func (c *Curve) Eval(x float32) float32 {
	x = clamp01(x)
	if c.preset == Custom {
		lo, hi := c.points[0].X, c.points[len(c.points)-1].X
		x = math32.Max(lo, math32.Min(hi, x))
		return clamp01(float32(c.pred.Predict(float64(x))))
	}
	return clamp01(presetValue(c.preset, 1-x))
}

// Strength returns the brush falloff for a point at distance from the brush
// center. It is 1 at the center and 0 at or beyond radius.
func (c *Curve) Strength(distance, radius float32) float32 {
	if radius <= 0 || distance >= radius {
		return 0
	}
	return c.Eval(distance / radius)
}

func presetValue(preset Preset, p float32) float32 {
	switch preset {
	case Smoother:
		return p * p * p * (p*(p*6-15) + 10)
	case Sphere:
		return math32.Sqrt(math32.Max(0, 2*p-p*p))
	case Root:
		return math32.Sqrt(p)
	case Sharp:
		return p * p
	case Linear:
		return p
	case Pow4:
		return p * p * p * p
	case InvSquare:
		return p * (2 - p)
	case Constant:
		return 1
	default:
		return 3*p*p - 2*p*p*p
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
