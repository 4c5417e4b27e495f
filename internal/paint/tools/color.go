package tools

import (
	"github.com/Faultbox/gpaint/internal/paint/aggregate"
	"github.com/Faultbox/gpaint/internal/paint/brush"
	"github.com/Faultbox/gpaint/internal/paint/hits"
	"github.com/Faultbox/gpaint/pkg/gpdata"
)

type tint struct{}

func (tint) Needs(cfg *brush.Config) Needs {
	return Needs{Fill: cfg.VertexMode.AffectsFill()}
}

func (tint) Prepare(*Context) {}

func (tint) Apply(ctx *Context, h *hits.Hit, inf float32) bool {
	if h.IsFill() {
		if !ctx.Brush.VertexMode.AffectsFill() {
			return false
		}
		// fill hits repeat, so each one blends onto the current fill color
		old := h.Stroke.FillColor
		h.Stroke.SetFillColor(tintColor(old, ctx.ink(), ctx.FillInfluence(), ctx.Invert))
		return h.Stroke.FillColor != old
	}
	if !ctx.Brush.VertexMode.AffectsStroke() || inf <= 0 {
		return false
	}
	c := tintColor(h.Color, ctx.ink(), inf, ctx.Invert)
	h.Stroke.SetPointColor(h.Index, c)
	return c != h.Color
}

// tintColor composites ink over c with straight alpha. Inverted tint only
// removes alpha.
func tintColor(c gpdata.Color, ink gpdata.RGB, inf float32, invert bool) gpdata.Color {
	if invert {
		c.A = gpdata.Clamp01(c.A - inf)
		return c
	}
	rgb := c.RGB().Scale(c.A).Lerp(ink, inf)
	a := c.A*(1-inf) + inf
	if a > 0 {
		rgb = rgb.Scale(1 / a)
	}
	return gpdata.Color{R: rgb.R, G: rgb.G, B: rgb.B, A: a}.Clamp()
}

type replace struct{}

func (replace) Needs(cfg *brush.Config) Needs {
	return Needs{Fill: cfg.VertexMode.AffectsFill()}
}

func (replace) Prepare(*Context) {}

func (replace) Apply(ctx *Context, h *hits.Hit, _ float32) bool {
	if h.IsFill() {
		old := h.Stroke.FillColor
		if !ctx.Brush.VertexMode.AffectsFill() || old.A <= 0 {
			return false
		}
		h.Stroke.SetFillColor(old.WithRGB(ctx.ink()))
		return h.Stroke.FillColor != old
	}
	if !ctx.Brush.VertexMode.AffectsStroke() || h.Color.A <= 0 {
		return false
	}
	c := h.Color.WithRGB(ctx.ink())
	h.Stroke.SetPointColor(h.Index, c)
	return c != h.Color
}

type blur struct{}

func (blur) Needs(*brush.Config) Needs { return Needs{} }

func (blur) Prepare(ctx *Context) {
	ctx.colors = aggregate.PointColors(ctx.Hits)
}

func (blur) Apply(ctx *Context, h *hits.Hit, inf float32) bool {
	if h.IsFill() || inf <= 0 {
		return false
	}
	target, ok := ctx.colors.MeanExcluding(h.Color)
	if !ok {
		return false
	}
	c := h.Color.WithRGB(h.Color.RGB().Lerp(target, inf))
	h.Stroke.SetPointColor(h.Index, c)
	return c != h.Color
}

type average struct{}

func (average) Needs(cfg *brush.Config) Needs {
	return Needs{Fill: cfg.VertexMode.AffectsFill()}
}

func (average) Prepare(ctx *Context) {
	ctx.colors = aggregate.MixedColors(ctx.Hits)
}

func (average) Apply(ctx *Context, h *hits.Hit, inf float32) bool {
	target, ok := ctx.colors.Mean()
	if !ok {
		return false
	}
	if h.IsFill() {
		if !ctx.Brush.VertexMode.AffectsFill() {
			return false
		}
		old := h.Stroke.FillColor
		f := ctx.FillInfluence()
		h.Stroke.SetFillColor(averageColor(old, target, f, ctx.Invert))
		return h.Stroke.FillColor != old
	}
	if !ctx.Brush.VertexMode.AffectsStroke() || inf <= 0 {
		return false
	}
	c := averageColor(h.Color, target, inf, ctx.Invert)
	h.Stroke.SetPointColor(h.Index, c)
	return c != h.Color
}

func averageColor(c gpdata.Color, target gpdata.RGB, inf float32, invert bool) gpdata.Color {
	out := c.WithRGB(c.RGB().Lerp(target, inf))
	out.A = clampedDelta(c.A, inf, invert)
	return out.Clamp()
}

type smear struct{}

func (smear) Needs(*brush.Config) Needs { return Needs{} }

func (smear) Prepare(ctx *Context) {
	ctx.Grid.Build(ctx.Influence.Footprint)
	ctx.Grid.Populate(ctx.Hits)
}

// Apply ignores the multi-frame falloff: smear strength depends only on the
// distance to the brush center.
func (smear) Apply(ctx *Context, h *hits.Hit, _ float32) bool {
	if h.IsFill() || ctx.First || ctx.Direction.LengthSq() == 0 {
		return false
	}
	inf := ctx.Influence.Spatial(h.Pos)
	if inf <= 0 {
		return false
	}
	target, ok := ctx.Grid.Upstream(h.Pos, ctx.Direction)
	if !ok {
		return false
	}
	c := h.Color.WithRGB(h.Color.RGB().Lerp(target, inf))
	h.Stroke.SetPointColor(h.Index, c)
	return c != h.Color
}
