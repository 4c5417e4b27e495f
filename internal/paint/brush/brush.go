// Package brush holds the brush configuration, the per-sample input record
// and the footprint/influence math shared by every paint tool.
package brush

import (
	"errors"
	"fmt"

	"github.com/Faultbox/gpaint/pkg/curve"
	"github.com/Faultbox/gpaint/pkg/gpdata"
)

// ErrUnknownTool is returned for tool names that do not exist.
var ErrUnknownTool = errors.New("brush: unknown tool")

// Tool selects what the brush does to the points it touches.
type Tool int

// Color tools.
const (
	Tint Tool = iota
	Replace
	Blur
	Average
	Smear
)

// Weight tools.
const (
	WeightDraw Tool = iota + 100
	WeightBlur
	WeightAverage
	WeightSmear
)

var toolNames = map[Tool]string{
	Tint:          "tint",
	Replace:       "replace",
	Blur:          "blur",
	Average:       "average",
	Smear:         "smear",
	WeightDraw:    "weight_draw",
	WeightBlur:    "weight_blur",
	WeightAverage: "weight_average",
	WeightSmear:   "weight_smear",
}

// String returns the configuration name of the tool.
func (t Tool) String() string {
	if n, ok := toolNames[t]; ok {
		return n
	}
	return fmt.Sprintf("tool(%d)", int(t))
}

// IsWeight reports whether the tool paints deform weights.
func (t Tool) IsWeight() bool {
	return t >= WeightDraw
}

// ParseTool converts a configuration name into a Tool.
func ParseTool(name string) (Tool, error) {
	for t, n := range toolNames {
		if n == name {
			return t, nil
		}
	}
	return Tint, fmt.Errorf("%w: %q", ErrUnknownTool, name)
}

// VertexMode selects which colors the color tools affect.
type VertexMode int

const (
	ModeStroke VertexMode = iota
	ModeFill
	ModeBoth
)

// AffectsStroke reports whether point colors are painted.
func (m VertexMode) AffectsStroke() bool { return m != ModeFill }

// AffectsFill reports whether stroke fill colors are painted.
func (m VertexMode) AffectsFill() bool { return m != ModeStroke }

// ParseVertexMode converts "stroke", "fill" or "both".
func ParseVertexMode(name string) (VertexMode, error) {
	switch name {
	case "stroke", "":
		return ModeStroke, nil
	case "fill":
		return ModeFill, nil
	case "both":
		return ModeBoth, nil
	}
	return ModeStroke, fmt.Errorf("brush: unknown vertex mode %q", name)
}

// Config is the read-only brush configuration for a session.
type Config struct {
	Tool                Tool
	Size                int     // base radius in pixels
	UsePressureSize     bool    // radius scales with pressure
	Strength            float32 // alpha for color tools, strength for weight tools
	UsePressureStrength bool
	Weight              float32 // target weight for WeightDraw
	Color               gpdata.Color
	VertexMode          VertexMode
	Falloff             *curve.Curve // nil means the smooth preset
	BlurKernelRadius    int          // weight blur neighbor count, 0 means the default of 5
}

// Curve returns the configured falloff curve.
func (c *Config) Curve() *curve.Curve {
	if c.Falloff == nil {
		return defaultCurve
	}
	return c.Falloff
}

var defaultCurve = curve.NewPreset(curve.Smooth)

// Sample is one pointer-motion input record.
type Sample struct {
	X, Y     float32
	Pressure float32 // [0,1]
	Invert   bool    // invert modifier held
	First    bool    // first sample of the stroke
}
