package config

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/multierr"

	"github.com/Faultbox/gpaint/internal/logger"
	"github.com/Faultbox/gpaint/internal/paint/brush"
	"github.com/Faultbox/gpaint/internal/paint/session"
	"github.com/Faultbox/gpaint/internal/view"
	"github.com/Faultbox/gpaint/pkg/curve"
)

// ErrInvalid wraps every validation problem.
var ErrInvalid = errors.New("config: invalid")

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var errs error
	add := func(format string, args ...any) {
		errs = multierr.Append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	b := &c.Brush
	tool, err := brush.ParseTool(b.Tool)
	if err != nil {
		add("brush.tool: %v", err)
	}
	if b.Size < 0 {
		add("brush.size %d is negative", b.Size)
	}
	if !unit(b.Strength) {
		add("brush.strength %v outside [0,1]", b.Strength)
	}
	if !unit(b.Weight) {
		add("brush.weight %v outside [0,1]", b.Weight)
	}
	if !unit(b.Color.R) || !unit(b.Color.G) || !unit(b.Color.B) || !unit(b.Color.A) {
		add("brush.color %+v outside [0,1]", b.Color)
	}
	if _, err := b.curve(); err != nil {
		add("brush.falloff: %v", err)
	}
	if _, err := brush.ParseVertexMode(b.VertexMode); err != nil {
		add("brush.vertex_mode: %v", err)
	}
	if b.BlurKernel < 0 {
		add("brush.blur_kernel %d is negative", b.BlurKernel)
	}

	mode, err := session.ParseMode(c.Session.Mode)
	if err != nil {
		add("session.mode: %v", err)
	} else if mode == session.ModeVertex && tool.IsWeight() || mode == session.ModeWeight && !tool.IsWeight() {
		add("session.mode %s does not allow tool %s", c.Session.Mode, b.Tool)
	}
	if _, err := c.Session.frameCurve(); err != nil {
		add("session.frame_falloff_points: %v", err)
	}

	if c.View.Width <= 0 || c.View.Height <= 0 {
		add("view size %dx%d must be positive", c.View.Width, c.View.Height)
	}
	switch c.View.Projection {
	case "ortho":
	case "perspective":
		if c.View.FOV <= 0 || c.View.FOV >= 180 {
			add("view.fov %v outside (0,180)", c.View.FOV)
		}
	default:
		add("view.projection %q is not ortho or perspective", c.View.Projection)
	}

	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		add("logging.level: %v", err)
	}
	return errs
}

func unit(v float32) bool {
	return v >= 0 && v <= 1
}

func (b *BrushConfig) curve() (*curve.Curve, error) {
	p, err := curve.ParsePreset(b.Falloff)
	if err != nil {
		return nil, err
	}
	if p != curve.Custom {
		return curve.NewPreset(p), nil
	}
	return curve.New(b.FalloffPoints)
}

func (s *SessionConfig) frameCurve() (*curve.Curve, error) {
	if !s.FrameFalloff {
		return nil, nil
	}
	if len(s.FrameFalloffPoints) == 0 {
		return curve.Gauss(), nil
	}
	return curve.New(s.FrameFalloffPoints)
}

// BrushConfig converts the brush section into the engine's brush settings.
func (c *Config) BrushConfig() (*brush.Config, error) {
	b := &c.Brush
	tool, err := brush.ParseTool(b.Tool)
	if err != nil {
		return nil, err
	}
	mode, err := brush.ParseVertexMode(b.VertexMode)
	if err != nil {
		return nil, err
	}
	falloff, err := b.curve()
	if err != nil {
		return nil, fmt.Errorf("brush falloff: %w", err)
	}
	return &brush.Config{
		Tool:                tool,
		Size:                b.Size,
		UsePressureSize:     b.PressureSize,
		Strength:            b.Strength,
		UsePressureStrength: b.PressureStrength,
		Weight:              b.Weight,
		Color:               b.Color,
		VertexMode:          mode,
		Falloff:             falloff,
		BlurKernelRadius:    b.BlurKernel,
	}, nil
}

// SessionOptions converts the session section into engine options.
func (c *Config) SessionOptions() (session.Options, error) {
	s := &c.Session
	mode, err := session.ParseMode(s.Mode)
	if err != nil {
		return session.Options{}, err
	}
	frame, err := s.frameCurve()
	if err != nil {
		return session.Options{}, fmt.Errorf("frame falloff: %w", err)
	}
	return session.Options{
		Mode:          mode,
		MultiFrame:    s.MultiFrame,
		FrameFalloff:  frame,
		Mask:          s.Mask,
		AutoNormalize: s.AutoNormalize,
		LockActive:    s.LockActive,
		Group:         s.Group,
	}, nil
}

// Converter builds the viewport projection.
func (c *Config) Converter() *view.Converter {
	v := &c.View
	if v.Projection == "perspective" {
		return view.NewPerspective(v.Eye, v.Center, v.FOV*math32.Pi/180, v.Width, v.Height)
	}
	return view.NewOrtho(v.Width, v.Height)
}
