package tools

import (
	"github.com/Faultbox/gpaint/internal/paint/aggregate"
	"github.com/Faultbox/gpaint/internal/paint/brush"
	"github.com/Faultbox/gpaint/internal/paint/hits"
	"github.com/Faultbox/gpaint/pkg/geom"
)

// setWeight moves the active group weight of h toward target. The entry is
// created when missing unless create is false and target is zero.
func setWeight(ctx *Context, h *hits.Hit, target, inf float32, create bool) bool {
	if h.IsFill() || ctx.Group < 0 || inf <= 0 {
		return false
	}
	p := h.Point()
	_, had := p.Weights.Find(ctx.Group)
	if !had && !create && target == 0 {
		return false
	}
	h.Stroke.SetPointWeight(h.Index, ctx.Group, lerp(h.Weight, target, inf))
	return !had || p.Weights.Get(ctx.Group) != h.Weight
}

type weightDraw struct{}

func (weightDraw) Needs(*brush.Config) Needs { return Needs{} }

func (weightDraw) Prepare(*Context) {}

func (weightDraw) Apply(ctx *Context, h *hits.Hit, inf float32) bool {
	target := ctx.Brush.Weight
	if ctx.Invert {
		target = -target
	}
	return setWeight(ctx, h, target, inf, true)
}

type weightAverage struct{}

func (weightAverage) Needs(*brush.Config) Needs { return Needs{} }

func (weightAverage) Prepare(ctx *Context) {
	ctx.meanWeight, ctx.hasMean = aggregate.MeanWeight(ctx.Hits)
}

func (weightAverage) Apply(ctx *Context, h *hits.Hit, inf float32) bool {
	if !ctx.hasMean {
		return false
	}
	return setWeight(ctx, h, ctx.meanWeight, inf, false)
}

type weightBlur struct{}

func (weightBlur) Needs(*brush.Config) Needs { return Needs{Nearest: true} }

func (weightBlur) Prepare(*Context) {}

func (weightBlur) Apply(ctx *Context, h *hits.Hit, inf float32) bool {
	k := blurNeighbors
	if ctx.Brush.BlurKernelRadius > 0 {
		k = ctx.Brush.BlurKernelRadius
	}
	ctx.found = ctx.Nearest.KNearest(ctx.found[:0], h.Pos.Vec2(), k)
	target, ok := blurTarget(ctx.found)
	if !ok {
		return false
	}
	return setWeight(ctx, h, target, inf, false)
}

// blurTarget is the distance-weighted mean weight of the neighbors,
// skipping the query point itself.
func blurTarget(found []aggregate.Neighbor) (float32, bool) {
	if len(found) < 2 {
		return 0, false
	}
	var sumDist float32
	for _, n := range found {
		sumDist += n.Dist
	}
	if sumDist == 0 {
		return 0, false
	}
	var acc, sumW, plain float32
	count := 0
	for _, n := range found {
		if n.Dist == 0 {
			continue
		}
		w := 1 - n.Dist/sumDist
		acc += w * n.Weight
		sumW += w
		plain += n.Weight
		count++
	}
	if sumW > 0 {
		return acc / sumW, true
	}
	return plain / float32(count), true
}

type weightSmear struct{}

func (weightSmear) Needs(*brush.Config) Needs { return Needs{Nearest: true} }

func (weightSmear) Prepare(*Context) {}

func (weightSmear) Apply(ctx *Context, h *hits.Hit, inf float32) bool {
	if ctx.First || ctx.Direction.LengthSq() == 0 {
		return false
	}
	pos := h.Pos.Vec2()
	ctx.found = ctx.Nearest.KNearest(ctx.found[:0], pos, smearNeighbors)
	target, ok := smearTarget(ctx.found, pos, ctx.Direction.Normalize())
	if !ok {
		return false
	}
	return setWeight(ctx, h, target, inf, false)
}

// smearTarget picks the neighbor lying upstream of pos along dir that best
// combines alignment and closeness.
func smearTarget(found []aggregate.Neighbor, pos, dir geom.Vec2) (float32, bool) {
	dmin, dmax := float32(-1), float32(0)
	for _, n := range found {
		if n.Dist == 0 {
			continue
		}
		if dmin < 0 || n.Dist < dmin {
			dmin = n.Dist
		}
		dmax = max(dmax, n.Dist)
	}
	if dmin < 0 {
		return 0, false
	}
	distF := float32(1)
	if dmax > dmin {
		distF = 0.95 / (dmax - dmin)
	}

	best, bestScore := float32(0), float32(0)
	ok := false
	for _, n := range found {
		if n.Dist == 0 {
			continue
		}
		dot := pos.Sub(n.Pos).Normalize().Dot(dir)
		if dot <= 0 {
			continue
		}
		score := dot * (1 - (n.Dist-dmin)*distF)
		if !ok || score > bestScore {
			best, bestScore, ok = n.Weight, score, true
		}
	}
	return best, ok
}
