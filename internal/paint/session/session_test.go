package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/gpaint/internal/paint/brush"
	"github.com/Faultbox/gpaint/internal/view"
	"github.com/Faultbox/gpaint/pkg/curve"
	"github.com/Faultbox/gpaint/pkg/geom"
	"github.com/Faultbox/gpaint/pkg/gpdata"
)

var (
	red  = gpdata.Color{R: 1, A: 1}
	blue = gpdata.Color{B: 1, A: 1}
)

func point(x, y float32, c gpdata.Color, w ...gpdata.DeformWeight) gpdata.Point {
	return gpdata.Point{Pos: geom.Vec3{X: x, Y: y}, Color: c, Weights: w}
}

func frame(n int, pts ...gpdata.Point) *gpdata.Frame {
	return &gpdata.Frame{Number: n, Strokes: []*gpdata.Stroke{{Points: pts}}}
}

func document(frames ...*gpdata.Frame) *gpdata.Document {
	return &gpdata.Document{
		Layers: []*gpdata.Layer{{Name: "ink", Active: frames[0].Number, Frames: frames}},
	}
}

func tintBrush() *brush.Config {
	return &brush.Config{Tool: brush.Tint, Size: 20, Strength: 1, Color: red}
}

func start(t *testing.T, doc *gpdata.Document, cfg *brush.Config, opts Options) *Session {
	t.Helper()
	s, err := New(doc, view.NewOrtho(400, 400), cfg, opts, zaptest.NewLogger(t))
	require.NoError(t, err)
	return s
}

func at(x, y float32) brush.Sample {
	return brush.Sample{X: x, Y: y, Pressure: 1}
}

func TestTintSingleSample(t *testing.T) {
	doc := document(frame(1, point(105, 100, blue)))
	calls := 0
	s := start(t, doc, tintBrush(), Options{
		Notifier: NotifierFunc(func(*gpdata.Document) { calls++ }),
	})

	first := at(100, 100)
	first.First = true
	require.True(t, s.Apply(first))
	assert.Equal(t, 1, calls)

	c := doc.Layers[0].Frames[0].Strokes[0].Points[0].Color
	assert.InDelta(t, 0.84375, c.R, 1e-5)
	assert.InDelta(t, 1, c.A, 1e-6)

	// nothing under the brush
	assert.False(t, s.Apply(at(300, 300)))
	assert.Equal(t, 1, calls)

	st := s.End()
	assert.Equal(t, Stats{Samples: 2, Changed: 1, Frames: 2, Hits: 1, Painted: 1}, st)
	assert.False(t, s.Apply(at(100, 100)))
	assert.Equal(t, st, s.End())
}

func TestSkipsLockedAndHiddenLayers(t *testing.T) {
	doc := document(frame(1, point(100, 100, blue)))
	doc.Layers = append(doc.Layers,
		&gpdata.Layer{Name: "locked", Locked: true, Active: 1, Frames: []*gpdata.Frame{frame(1, point(100, 100, blue))}},
		&gpdata.Layer{Name: "hidden", Hidden: true, Active: 1, Frames: []*gpdata.Frame{frame(1, point(100, 100, blue))}},
	)
	s := start(t, doc, tintBrush(), Options{})

	require.True(t, s.Apply(at(100, 100)))
	assert.Equal(t, red, doc.Layers[0].Frames[0].Strokes[0].Points[0].Color)
	assert.Equal(t, blue, doc.Layers[1].Frames[0].Strokes[0].Points[0].Color)
	assert.Equal(t, blue, doc.Layers[2].Frames[0].Strokes[0].Points[0].Color)
}

func TestActiveFrameOnly(t *testing.T) {
	f1, f2 := frame(1, point(100, 100, blue)), frame(2, point(100, 100, blue))
	f1.Selected = true
	doc := document(f2, f1)
	s := start(t, doc, tintBrush(), Options{})

	require.True(t, s.Apply(at(100, 100)))
	assert.Equal(t, red, f2.Strokes[0].Points[0].Color)
	assert.Equal(t, blue, f1.Strokes[0].Points[0].Color)
}

func TestMultiFrame(t *testing.T) {
	build := func() (*gpdata.Document, []*gpdata.Frame) {
		fs := []*gpdata.Frame{
			frame(1, point(100, 100, blue)),
			frame(2, point(100, 100, blue)),
			frame(3, point(100, 100, blue)),
			frame(4, point(100, 100, blue)),
		}
		fs[0].Selected = true
		fs[2].Selected = true
		doc := document(fs...)
		doc.Layers[0].Active = 2
		return doc, fs
	}

	t.Run("no falloff", func(t *testing.T) {
		doc, fs := build()
		s := start(t, doc, tintBrush(), Options{MultiFrame: true})
		require.True(t, s.Apply(at(100, 100)))
		assert.Equal(t, red, fs[0].Strokes[0].Points[0].Color)
		assert.Equal(t, red, fs[1].Strokes[0].Points[0].Color)
		assert.Equal(t, red, fs[2].Strokes[0].Points[0].Color)
		assert.Equal(t, blue, fs[3].Strokes[0].Points[0].Color, "unselected frame")
		assert.Equal(t, 3, s.Stats().Frames)
	})

	t.Run("gauss falloff", func(t *testing.T) {
		doc, fs := build()
		s := start(t, doc, tintBrush(), Options{MultiFrame: true, FrameFalloff: curve.Gauss()})
		require.True(t, s.Apply(at(100, 100)))

		active := fs[1].Strokes[0].Points[0].Color
		edge := fs[0].Strokes[0].Points[0].Color
		assert.Equal(t, red, active)
		assert.InDelta(t, 0.025, edge.R, 1e-4)
		assert.Less(t, edge.R, active.R)
	})
}

func weightDoc(a, b float32) *gpdata.Document {
	doc := document(frame(1, point(100, 100, red,
		gpdata.DeformWeight{Group: 0, Weight: a},
		gpdata.DeformWeight{Group: 1, Weight: b},
	)))
	doc.VertexGroups = []gpdata.VertexGroup{{Name: "arm"}, {Name: "hand"}}
	doc.Armature = &gpdata.Armature{Name: "rig", Bones: []gpdata.Bone{
		{Name: "arm", Deform: true}, {Name: "hand", Deform: true},
	}}
	return doc
}

func TestWeightDrawNormalizes(t *testing.T) {
	doc := weightDoc(0.5, 0.5)
	cfg := &brush.Config{Tool: brush.WeightDraw, Size: 20, Strength: 1, Weight: 1}
	s := start(t, doc, cfg, Options{AutoNormalize: true, Group: "arm"})
	require.Equal(t, 0, s.Group())

	require.True(t, s.Apply(at(100, 100)))
	w := doc.Layers[0].Frames[0].Strokes[0].Points[0].Weights
	assert.InDelta(t, 1, w.Get(0), 1e-6)
	assert.InDelta(t, 0, w.Get(1), 1e-6)
	assert.Equal(t, 1, s.Stats().Normalized)
}

func TestWeightDrawWithoutNormalize(t *testing.T) {
	doc := weightDoc(0.5, 0.5)
	doc.ActiveGroup = 1
	cfg := &brush.Config{Tool: brush.WeightDraw, Size: 20, Strength: 1, Weight: 1}
	s := start(t, doc, cfg, Options{})

	require.True(t, s.Apply(at(100, 100)))
	w := doc.Layers[0].Frames[0].Strokes[0].Points[0].Weights
	assert.InDelta(t, 0.5, w.Get(0), 1e-6)
	assert.InDelta(t, 1, w.Get(1), 1e-6)
}

func TestConfigDegradationsWarn(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	cfg := &brush.Config{Tool: brush.WeightDraw, Size: 20, Strength: 1, Weight: 1}

	doc := weightDoc(0.5, 0.5)
	s, err := New(doc, view.NewOrtho(400, 400), cfg, Options{Group: "tail"}, zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, -1, s.Group())
	assert.False(t, s.Apply(at(100, 100)))
	assert.Equal(t, 1, logs.FilterMessage("vertex group not found, weight painting disabled").Len())

	doc = weightDoc(0.3, 0.3)
	doc.Armature = nil
	s, err = New(doc, view.NewOrtho(400, 400), cfg, Options{AutoNormalize: true}, zap.New(core))
	require.NoError(t, err)
	require.True(t, s.Apply(at(100, 100)))
	assert.Equal(t, 1, logs.FilterMessage("no bone-deformed vertex groups, auto-normalize disabled").Len())
	assert.InDelta(t, 0.3, doc.Layers[0].Frames[0].Strokes[0].Points[0].Weights.Get(1), 1e-6)
}

func TestToolModeMismatch(t *testing.T) {
	doc := weightDoc(0.5, 0.5)
	_, err := New(doc, view.NewOrtho(400, 400),
		&brush.Config{Tool: brush.WeightDraw, Size: 20}, Options{Mode: ModeVertex}, nil)
	assert.True(t, errors.Is(err, ErrToolMode))

	_, err = New(doc, view.NewOrtho(400, 400), tintBrush(), Options{Mode: ModeWeight}, nil)
	assert.True(t, errors.Is(err, ErrToolMode))

	_, err = New(doc, view.NewOrtho(400, 400), &brush.Config{Tool: brush.Tool(77)}, Options{}, nil)
	assert.True(t, errors.Is(err, brush.ErrUnknownTool))

	_, err = New(nil, view.NewOrtho(400, 400), tintBrush(), Options{}, nil)
	assert.Error(t, err)
}

func TestParseMode(t *testing.T) {
	for name, want := range map[string]Mode{"": ModeAuto, "auto": ModeAuto, "vertex": ModeVertex, "weight": ModeWeight} {
		got, err := ParseMode(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseMode("sculpt")
	assert.True(t, errors.Is(err, ErrToolMode))
}

func TestSmearNeedsMotion(t *testing.T) {
	doc := document(frame(1, point(105, 105, red), point(105, 95, blue)))
	cfg := &brush.Config{Tool: brush.Smear, Size: 20, Strength: 1}
	s := start(t, doc, cfg, Options{})

	first := at(100, 101)
	first.First = true
	assert.False(t, s.Apply(first))
	pts := doc.Layers[0].Frames[0].Strokes[0].Points
	assert.Equal(t, red, pts[0].Color)
	assert.Equal(t, blue, pts[1].Color)

	// moving down drags red from the row above onto the blue point
	require.True(t, s.Apply(at(100, 100)))
	assert.Greater(t, pts[1].Color.R, float32(0))
}

func TestSelectionMask(t *testing.T) {
	sel := point(100, 100, blue)
	sel.Selected = true
	doc := &gpdata.Document{Layers: []*gpdata.Layer{{
		Name: "ink", Active: 1,
		Frames: []*gpdata.Frame{{Number: 1, Strokes: []*gpdata.Stroke{
			{Points: []gpdata.Point{point(90, 100, blue), point(95, 100, blue)}},
			{Points: []gpdata.Point{sel}},
			{Points: []gpdata.Point{point(101, 100, blue)}},
		}}},
	}}}
	s := start(t, doc, tintBrush(), Options{Mask: true})

	require.True(t, s.Apply(at(100, 100)))
	strokes := doc.Layers[0].Frames[0].Strokes
	assert.Equal(t, blue, strokes[0].Points[0].Color)
	assert.Equal(t, blue, strokes[0].Points[1].Color)
	assert.Equal(t, red, strokes[1].Points[0].Color)
	assert.Equal(t, blue, strokes[2].Points[0].Color)
}

func TestWeightBlurUsesWideSearch(t *testing.T) {
	pts := []gpdata.Point{
		point(100, 100, red, gpdata.DeformWeight{Group: 0, Weight: 0}),
		// outside the 20px brush but inside the widened search ring
		point(122, 100, red, gpdata.DeformWeight{Group: 0, Weight: 1}),
	}
	doc := document(frame(1, pts...))
	doc.VertexGroups = []gpdata.VertexGroup{{Name: "arm"}}
	cfg := &brush.Config{Tool: brush.WeightBlur, Size: 20, Strength: 1}
	s := start(t, doc, cfg, Options{})

	require.True(t, s.Apply(at(100, 100)))
	got := doc.Layers[0].Frames[0].Strokes[0].Points
	assert.InDelta(t, 1, got[0].Weights.Get(0), 1e-6)
	assert.InDelta(t, 1, got[1].Weights.Get(0), 1e-6, "outside the brush stays untouched")
	assert.Equal(t, 1, s.Stats().Hits)
}
