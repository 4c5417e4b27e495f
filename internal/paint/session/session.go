// Package session runs a brush stroke from pointer-down to pointer-up. Each
// sample walks the editable layers and frames, selects the points under the
// brush, builds the aggregates the tool needs, applies the tool and, for
// weight tools, renormalizes the painted points.
package session

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/gpaint/internal/logger"
	"github.com/Faultbox/gpaint/internal/paint/brush"
	"github.com/Faultbox/gpaint/internal/paint/hits"
	"github.com/Faultbox/gpaint/internal/paint/tools"
	"github.com/Faultbox/gpaint/internal/paint/weights"
	"github.com/Faultbox/gpaint/pkg/curve"
	"github.com/Faultbox/gpaint/pkg/geom"
	"github.com/Faultbox/gpaint/pkg/gpdata"
)

// ErrToolMode is returned when the tool does not belong to the paint mode.
var ErrToolMode = errors.New("session: tool does not match paint mode")

// Mode is the paint mode a session runs in.
type Mode int

const (
	// ModeAuto picks the mode from the tool.
	ModeAuto Mode = iota
	ModeVertex
	ModeWeight
)

func (m Mode) String() string {
	switch m {
	case ModeVertex:
		return "vertex"
	case ModeWeight:
		return "weight"
	}
	return "auto"
}

// ParseMode converts "auto", "vertex" or "weight".
func ParseMode(name string) (Mode, error) {
	switch name {
	case "auto", "":
		return ModeAuto, nil
	case "vertex":
		return ModeVertex, nil
	case "weight":
		return ModeWeight, nil
	}
	return ModeAuto, fmt.Errorf("%w: unknown mode %q", ErrToolMode, name)
}

// Notifier is told once per sample that changed the document.
type Notifier interface {
	GeometryChanged(doc *gpdata.Document)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(doc *gpdata.Document)

// GeometryChanged calls f(doc).
func (f NotifierFunc) GeometryChanged(doc *gpdata.Document) { f(doc) }

// Options are the per-session toggles.
type Options struct {
	Mode       Mode
	MultiFrame bool
	// FrameFalloff scales the brush on selected frames away from the active
	// one. Nil disables temporal falloff.
	FrameFalloff  *curve.Curve
	Mask          bool   // only paint selected points
	AutoNormalize bool   // keep bone-deformed weights summing to one
	LockActive    bool   // never let the normalizer touch the active group
	Group         string // vertex group to paint, empty for the document's active group
	Notifier      Notifier
}

// Stats counts what a session did.
type Stats struct {
	Samples    int `csv:"samples"`
	Changed    int `csv:"changed_samples"`
	Frames     int `csv:"frame_passes"`
	Hits       int `csv:"hits"`
	Painted    int `csv:"painted"`
	Normalized int `csv:"normalized"`
}

// Session is one brush stroke. It is not safe for concurrent use.
type Session struct {
	doc   *gpdata.Document
	brush *brush.Config
	opts  Options
	log   *zap.Logger

	applier    tools.Applier
	needs      tools.Needs
	selector   *hits.Selector
	ctx        *tools.Context
	normalizer *weights.Normalizer
	group      int
	painted    []int

	prev    geom.Vec2
	hasPrev bool
	dir     geom.Vec2

	stats Stats
	ended bool
}

// New starts a session. A nil log uses the package logger.
func New(doc *gpdata.Document, conv hits.SpaceConverter, cfg *brush.Config, opts Options, log *zap.Logger) (*Session, error) {
	if doc == nil || conv == nil || cfg == nil {
		return nil, errors.New("session: document, converter and brush are required")
	}
	if cfg.Size < 0 {
		return nil, fmt.Errorf("session: negative brush size %d", cfg.Size)
	}
	switch {
	case opts.Mode == ModeVertex && cfg.Tool.IsWeight(),
		opts.Mode == ModeWeight && !cfg.Tool.IsWeight():
		return nil, fmt.Errorf("%w: %v in %v mode", ErrToolMode, cfg.Tool, opts.Mode)
	}
	applier, err := tools.For(cfg.Tool)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if log == nil {
		log = logger.Named("session")
	}

	s := &Session{
		doc:      doc,
		brush:    cfg,
		opts:     opts,
		log:      log,
		applier:  applier,
		needs:    applier.Needs(cfg),
		selector: hits.NewSelector(doc, conv),
		group:    -1,
	}
	if cfg.Tool.IsWeight() {
		s.setupWeights()
	}
	s.ctx = tools.NewContext(cfg, s.group)

	s.log.Info("brush session started",
		zap.Stringer("tool", cfg.Tool),
		zap.Int("size", cfg.Size),
		zap.Float32("strength", cfg.Strength),
		zap.Bool("multiframe", opts.MultiFrame),
		zap.Int("group", s.group),
		zap.Bool("normalize", s.normalizer != nil),
	)
	return s, nil
}

func (s *Session) setupWeights() {
	s.group = s.doc.ActiveGroup
	if s.opts.Group != "" {
		s.group = s.doc.GroupIndex(s.opts.Group)
	}
	if s.group < 0 || s.group >= len(s.doc.VertexGroups) {
		s.log.Warn("vertex group not found, weight painting disabled",
			zap.String("group", s.opts.Group), zap.Int("index", s.group))
		s.group = -1
		return
	}
	if !s.opts.AutoNormalize {
		return
	}
	meta := weights.NewMeta(s.doc)
	if !meta.AnyBoneDeformed() {
		s.log.Warn("no bone-deformed vertex groups, auto-normalize disabled")
		return
	}
	s.normalizer = &weights.Normalizer{
		Meta:       meta,
		Active:     s.group,
		LockActive: s.opts.LockActive,
	}
}

// Group returns the vertex group being painted, -1 for none.
func (s *Session) Group() int {
	return s.group
}

// Stats returns the counters so far.
func (s *Session) Stats() Stats {
	return s.stats
}

// Apply paints one pointer sample and reports whether anything changed.
func (s *Session) Apply(sample brush.Sample) bool {
	if s.ended {
		return false
	}
	s.stats.Samples++
	s.track(sample)
	if s.brush.Tool.IsWeight() && s.group < 0 {
		return false
	}

	fp := brush.NewFootprint(s.brush, sample)
	inf := brush.NewInfluence(s.brush, fp, sample)
	s.ctx.Invert = sample.Invert
	s.ctx.First = !s.hasDirection()
	s.ctx.Direction = s.dir

	changed, frames, found := false, 0, 0
	for _, layer := range s.doc.Layers {
		if !layer.Editable() {
			continue
		}
		if !s.opts.MultiFrame {
			if f := layer.ActiveFrame(); f != nil {
				n, c := s.paintFrame(layer, f, inf)
				frames, found, changed = frames+1, found+n, changed || c
			}
			continue
		}
		first, last := layer.SelectedRange()
		for _, f := range layer.Frames {
			if f.Number != layer.Active && !f.Selected {
				continue
			}
			scale := float32(1)
			if f.Number != layer.Active {
				scale = curve.FrameFalloff(s.opts.FrameFalloff, f.Number, layer.Active, first, last)
			}
			n, c := s.paintFrame(layer, f, inf.WithFrameScale(scale))
			frames, found, changed = frames+1, found+n, changed || c
		}
	}

	s.stats.Frames += frames
	s.stats.Hits += found
	if changed {
		s.stats.Changed++
		if s.opts.Notifier != nil {
			s.opts.Notifier.GeometryChanged(s.doc)
		}
	}
	s.log.Debug("brush applied",
		zap.Float32("x", sample.X),
		zap.Float32("y", sample.Y),
		zap.Int("frames", frames),
		zap.Int("hits", found),
		zap.Bool("changed", changed),
	)
	return changed
}

// track updates the motion direction from the previous sample.
func (s *Session) track(sample brush.Sample) {
	pos := geom.Vec2{X: sample.X, Y: sample.Y}
	if sample.First || !s.hasPrev {
		s.dir = geom.Vec2{}
	} else if d := pos.Sub(s.prev); d.LengthSq() > 0 {
		s.dir = d.Normalize()
	}
	s.prev, s.hasPrev = pos, true
}

func (s *Session) hasDirection() bool {
	return s.dir.LengthSq() > 0
}

// paintFrame runs selection, aggregation, the tool and the normalizer over
// one frame. It returns the number of hits and whether anything changed.
func (s *Session) paintFrame(layer *gpdata.Layer, frame *gpdata.Frame, inf brush.Influence) (int, bool) {
	q := hits.Query{
		Footprint: inf.Footprint,
		Mask:      s.opts.Mask,
		Fill:      s.needs.Fill,
		Group:     s.group,
	}
	if s.needs.Nearest {
		q.Search = inf.Footprint.Widen(tools.SearchWiden)
		q.Strict = true
		q.Nearby = s.ctx.Nearest
	}

	s.ctx.Reset()
	s.selector.Reset()
	hs := s.selector.Select(frame, layer.Transform(), q)
	if len(hs) == 0 {
		return 0, false
	}

	s.ctx.Influence = inf
	s.ctx.Hits = hs
	s.applier.Prepare(s.ctx)

	s.painted = s.painted[:0]
	for i := range hs {
		h := &hs[i]
		if s.applier.Apply(s.ctx, h, inf.At(h.Pos)) {
			s.painted = append(s.painted, i)
		}
	}
	s.stats.Painted += len(s.painted)

	if s.normalizer != nil {
		for _, i := range s.painted {
			if h := &hs[i]; !h.IsFill() {
				s.normalizer.Normalize(h.Point().Weights)
				s.stats.Normalized++
			}
		}
	}
	return len(hs), len(s.painted) > 0
}

// End finishes the session and returns its counters. Later samples are
// ignored.
func (s *Session) End() Stats {
	if !s.ended {
		s.ended = true
		s.log.Info("brush session ended",
			zap.Stringer("tool", s.brush.Tool),
			zap.Int("samples", s.stats.Samples),
			zap.Int("changed", s.stats.Changed),
			zap.Int("hits", s.stats.Hits),
			zap.Int("painted", s.stats.Painted),
			zap.Int("normalized", s.stats.Normalized),
		)
	}
	return s.stats
}
