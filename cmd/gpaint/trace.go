package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/gpaint/internal/config"
	"github.com/Faultbox/gpaint/internal/paint/brush"
	"github.com/Faultbox/gpaint/internal/paint/session"
	"github.com/Faultbox/gpaint/pkg/gpdata"
)

// traceSample is one recorded pointer sample.
type traceSample struct {
	X        float32  `yaml:"x"`
	Y        float32  `yaml:"y"`
	Pressure *float32 `yaml:"pressure,omitempty"` // default 1
	Invert   bool     `yaml:"invert,omitempty"`
	First    bool     `yaml:"first,omitempty"` // restart motion tracking
}

type trace struct {
	Samples []traceSample `yaml:"samples"`
}

func loadTrace(path string) (*trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t trace
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &t, nil
}

func (t *trace) brushSamples() []brush.Sample {
	out := make([]brush.Sample, len(t.Samples))
	for i, s := range t.Samples {
		p := float32(1)
		if s.Pressure != nil {
			p = gpdata.Clamp01(*s.Pressure)
		}
		out[i] = brush.Sample{X: s.X, Y: s.Y, Pressure: p, Invert: s.Invert, First: s.First || i == 0}
	}
	return out
}

// replay runs the trace as one brush session.
func replay(cfg *config.Config, doc *gpdata.Document, t *trace, log *zap.Logger) (session.Stats, error) {
	bc, err := cfg.BrushConfig()
	if err != nil {
		return session.Stats{}, err
	}
	opts, err := cfg.SessionOptions()
	if err != nil {
		return session.Stats{}, err
	}
	redraws := 0
	opts.Notifier = session.NotifierFunc(func(*gpdata.Document) { redraws++ })

	s, err := session.New(doc, cfg.Converter(), bc, opts, log.Named("session"))
	if err != nil {
		return session.Stats{}, err
	}
	for _, sample := range t.brushSamples() {
		s.Apply(sample)
	}
	stats := s.End()
	log.Debug("trace replayed", zap.Int("samples", len(t.Samples)), zap.Int("redraws", redraws))
	return stats, nil
}
