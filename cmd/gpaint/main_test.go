package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Faultbox/gpaint/internal/config"
	"github.com/Faultbox/gpaint/pkg/gpdata"
)

const testDoc = `
name: rig
vertex_groups:
  - name: arm
  - name: hand
    locked: true
active_group: 0
armature:
  name: skeleton
  bones:
    - {name: arm, deform: true}
    - {name: hand, deform: true}
layers:
  - name: ink
    active: 1
    frames:
      - number: 1
        strokes:
          - material: 0
            fill_color: {r: 0, g: 0, b: 0, a: 0}
            points:
              - pos: {x: 100, y: 100, z: 0}
                color: {r: 0, g: 0, b: 1, a: 1}
                strength: 1
                weights: [{group: 0, weight: 0.2}, {group: 1, weight: 0.3}]
              - pos: {x: 110, y: 100, z: 0}
                color: {r: 0, g: 0, b: 1, a: 1}
                strength: 1
`

func loadTestDoc(t *testing.T) *gpdata.Document {
	t.Helper()
	doc, err := gpdata.Decode(strings.NewReader(testDoc))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	return doc
}

func TestPrintInfo(t *testing.T) {
	var buf bytes.Buffer
	printInfo(&buf, "rig.yaml", loadTestDoc(t))
	out := buf.String()

	for _, want := range []string{"Document: rig.yaml", "Points:   2", `Layer "ink"`, "0 arm active", "1 hand locked"} {
		if !strings.Contains(out, want) {
			t.Errorf("printInfo() output lacks %q:\n%s", want, out)
		}
	}
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	if err := writeReport(&buf, loadTestDoc(t)); err != nil {
		t.Fatalf("writeReport() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("writeReport() wrote %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "layer,frame,stroke,point") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "arm=0.2000;hand=0.3000") {
		t.Errorf("row = %q, want weights column", lines[1])
	}
}

func TestFormatWeightsSortsByGroup(t *testing.T) {
	doc := loadTestDoc(t)
	got := formatWeights(doc, gpdata.Weights{{Group: 5, Weight: 1}, {Group: 1, Weight: 0.5}})
	if got != "hand=0.5000;5=1.0000" {
		t.Errorf("formatWeights() = %q", got)
	}
}

func TestReplayWeightDraw(t *testing.T) {
	doc := loadTestDoc(t)
	cfg := config.Default()
	cfg.Brush.Tool = "weight_draw"
	cfg.Brush.Size = 20
	cfg.Brush.Strength = 1
	cfg.View.Width, cfg.View.Height = 400, 400

	tr := &trace{Samples: []traceSample{{X: 100, Y: 100}, {X: 101, Y: 100}}}
	stats, err := replay(cfg, doc, tr, zap.NewNop())
	if err != nil {
		t.Fatalf("replay() error = %v", err)
	}
	if stats.Samples != 2 || stats.Changed == 0 {
		t.Errorf("replay() stats = %+v", stats)
	}

	w := doc.Layers[0].Frames[0].Strokes[0].Points[0].Weights
	if got := w.Get(1); got != 0.3 {
		t.Errorf("locked hand weight = %v, want 0.3", got)
	}
	if sum := w.Get(0) + w.Get(1); sum < 0.9999 || sum > 1.0001 {
		t.Errorf("weight sum = %v, want 1", sum)
	}
}

func TestReplayBadTool(t *testing.T) {
	cfg := config.Default()
	cfg.Brush.Tool = "spray"
	if _, err := replay(cfg, loadTestDoc(t), &trace{}, zap.NewNop()); err == nil {
		t.Error("replay() error = nil, want error")
	}
}

func TestLoadTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.yaml")
	data := "samples:\n  - {x: 1, y: 2}\n  - {x: 3, y: 4, pressure: 0.5, invert: true}\n  - {x: 5, y: 6, first: true}\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write trace: %v", err)
	}
	tr, err := loadTrace(path)
	if err != nil {
		t.Fatalf("loadTrace() error = %v", err)
	}
	s := tr.brushSamples()
	if len(s) != 3 {
		t.Fatalf("len(samples) = %d, want 3", len(s))
	}
	if !s[0].First || s[1].First || !s[2].First {
		t.Errorf("First flags = %v %v %v", s[0].First, s[1].First, s[2].First)
	}
	if s[0].Pressure != 1 || s[1].Pressure != 0.5 || !s[1].Invert {
		t.Errorf("samples = %+v", s)
	}
}

func TestReorder(t *testing.T) {
	got := reorder([]string{"doc.yaml", "trace.yaml", "-o", "out.yaml"})
	want := []string{"-o", "out.yaml", "doc.yaml", "trace.yaml"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("reorder() = %v, want %v", got, want)
	}
	got = reorder([]string{"-o=out.csv", "doc.yaml"})
	want = []string{"-o=out.csv", "doc.yaml"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("reorder() = %v, want %v", got, want)
	}
}
