// Package config loads the gpaint settings: brush, session, viewport and
// logging.
package config

import (
	"github.com/Faultbox/gpaint/pkg/curve"
	"github.com/Faultbox/gpaint/pkg/geom"
	"github.com/Faultbox/gpaint/pkg/gpdata"
)

// Config holds all gpaint settings.
type Config struct {
	Brush   BrushConfig   `yaml:"brush"`
	Session SessionConfig `yaml:"session"`
	View    ViewConfig    `yaml:"view"`
	Logging LoggingConfig `yaml:"logging"`
}

// BrushConfig holds the brush settings.
type BrushConfig struct {
	Tool             string        `yaml:"tool"`
	Size             int           `yaml:"size"`
	Strength         float32       `yaml:"strength"`
	Weight           float32       `yaml:"weight"`
	Color            gpdata.Color  `yaml:"color"`
	PressureSize     bool          `yaml:"pressure_size"`
	PressureStrength bool          `yaml:"pressure_strength"`
	Falloff          string        `yaml:"falloff"`                  // preset name or "custom"
	FalloffPoints    []curve.Point `yaml:"falloff_points,omitempty"` // control points for "custom"
	VertexMode       string        `yaml:"vertex_mode"`              // stroke, fill or both
	BlurKernel       int           `yaml:"blur_kernel"`              // weight blur neighbors, 0 for default
}

// SessionConfig holds per-stroke toggles.
type SessionConfig struct {
	Mode               string        `yaml:"mode"` // auto, vertex or weight
	MultiFrame         bool          `yaml:"multiframe"`
	FrameFalloff       bool          `yaml:"frame_falloff"`
	FrameFalloffPoints []curve.Point `yaml:"frame_falloff_points,omitempty"` // empty uses the gauss bell
	Mask               bool          `yaml:"mask"`
	AutoNormalize      bool          `yaml:"auto_normalize"`
	LockActive         bool          `yaml:"lock_active"`
	Group              string        `yaml:"group"`
}

// ViewConfig describes the viewport samples are given in.
type ViewConfig struct {
	Width      int       `yaml:"width"`
	Height     int       `yaml:"height"`
	Projection string    `yaml:"projection"` // ortho or perspective
	Eye        geom.Vec3 `yaml:"eye"`
	Center     geom.Vec3 `yaml:"center"`
	FOV        float32   `yaml:"fov"` // vertical, degrees
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Brush: BrushConfig{
			Tool:       "tint",
			Size:       25,
			Strength:   0.8,
			Weight:     1,
			Color:      gpdata.Color{R: 0, G: 0, B: 0, A: 1},
			Falloff:    "smooth",
			VertexMode: "stroke",
		},
		Session: SessionConfig{
			Mode:          "auto",
			FrameFalloff:  true,
			AutoNormalize: true,
		},
		View: ViewConfig{
			Width:      1280,
			Height:     720,
			Projection: "ortho",
			Eye:        geom.Vec3{Z: 10},
			FOV:        50,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
