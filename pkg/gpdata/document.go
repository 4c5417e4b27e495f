// Package gpdata is the in-memory stroke document: layers of frames holding
// strokes whose points carry color and deform weights.
package gpdata

import (
	"github.com/Faultbox/gpaint/pkg/geom"
)

// Point is a stroke point.
type Point struct {
	Pos      geom.Vec3 `yaml:"pos"`
	Color    Color     `yaml:"color"`
	Strength float32   `yaml:"strength"`
	Selected bool      `yaml:"selected,omitempty"`
	Weights  Weights   `yaml:"weights,omitempty"`

	// OrigIndex is the index of the authoring point in Stroke.Orig for
	// evaluated strokes, or -1 when the point was generated by a modifier.
	OrigIndex int `yaml:"-"`
}

// Stroke is an ordered run of points with a material.
type Stroke struct {
	Points    []Point `yaml:"points"`
	Material  int     `yaml:"material"`
	FillColor Color   `yaml:"fill_color"`

	// Orig links an evaluated stroke back to its authoring stroke.
	Orig *Stroke `yaml:"-"`

	bounds      geom.Box3
	boundsValid bool
}

// Original returns the authoring stroke (the stroke itself unless evaluated).
func (s *Stroke) Original() *Stroke {
	if s.Orig != nil {
		return s.Orig
	}
	return s
}

// OriginalIndex maps point i to the authoring point index.
// It reports false for points that have no authoring counterpart.
func (s *Stroke) OriginalIndex(i int) (int, bool) {
	if s.Orig == nil {
		return i, true
	}
	idx := s.Points[i].OrigIndex
	if idx < 0 || idx >= len(s.Orig.Points) {
		return 0, false
	}
	return idx, true
}

// Bounds returns the layer-space bounding box of the stroke points.
func (s *Stroke) Bounds() geom.Box3 {
	if !s.boundsValid {
		s.UpdateBounds()
	}
	return s.bounds
}

// UpdateBounds recomputes the cached bounding box.
func (s *Stroke) UpdateBounds() {
	s.boundsValid = true
	if len(s.Points) == 0 {
		s.bounds = geom.Box3{}
		return
	}
	b := geom.Box3{Min: s.Points[0].Pos, Max: s.Points[0].Pos}
	for _, p := range s.Points[1:] {
		b.Min = b.Min.Min(p.Pos)
		b.Max = b.Max.Max(p.Pos)
	}
	s.bounds = b
}

// SetPointColor stores a clamped color on point i.
func (s *Stroke) SetPointColor(i int, c Color) {
	s.Points[i].Color = c.Clamp()
}

// SetPointWeight stores a clamped weight for group on point i.
func (s *Stroke) SetPointWeight(i, group int, w float32) {
	s.Points[i].Weights.Set(group, w)
}

// SetFillColor stores a clamped fill color.
func (s *Stroke) SetFillColor(c Color) {
	s.FillColor = c.Clamp()
}

// Frame is one keyframe of a layer.
type Frame struct {
	Number   int       `yaml:"number"`
	Selected bool      `yaml:"selected,omitempty"`
	Strokes  []*Stroke `yaml:"strokes"`
}

// Layer holds frames sharing a transform.
type Layer struct {
	Name   string    `yaml:"name"`
	Hidden bool      `yaml:"hidden,omitempty"`
	Locked bool      `yaml:"locked,omitempty"`
	Matrix geom.Mat4 `yaml:"matrix,flow,omitempty"`
	Active int       `yaml:"active"` // frame number of the active frame
	Frames []*Frame  `yaml:"frames"`
}

// Editable reports whether the layer can be painted.
func (l *Layer) Editable() bool {
	return !l.Hidden && !l.Locked
}

// Transform returns the layer-to-world matrix. An unset matrix is identity.
func (l *Layer) Transform() geom.Mat4 {
	if l.Matrix.IsZero() {
		return geom.Identity()
	}
	return l.Matrix
}

// ActiveFrame returns the active frame, or nil if the layer has none.
func (l *Layer) ActiveFrame() *Frame {
	for _, f := range l.Frames {
		if f.Number == l.Active {
			return f
		}
	}
	return nil
}

// SelectedRange returns the first and last frame numbers spanned by the
// active frame and every selected frame.
func (l *Layer) SelectedRange() (first, last int) {
	first, last = l.Active, l.Active
	for _, f := range l.Frames {
		if !f.Selected {
			continue
		}
		first = min(first, f.Number)
		last = max(last, f.Number)
	}
	return first, last
}

// Material controls how strokes are shown.
type Material struct {
	Name       string `yaml:"name"`
	Hidden     bool   `yaml:"hidden,omitempty"`
	Locked     bool   `yaml:"locked,omitempty"`
	ShowStroke bool   `yaml:"show_stroke"`
	ShowFill   bool   `yaml:"show_fill"`
}

// Editable reports whether strokes using the material can be painted.
func (m Material) Editable() bool {
	return !m.Hidden && !m.Locked
}

// VertexGroup is a named deform group.
type VertexGroup struct {
	Name   string `yaml:"name"`
	Locked bool   `yaml:"locked,omitempty"`
}

// Bone is an armature bone.
type Bone struct {
	Name   string `yaml:"name"`
	Deform bool   `yaml:"deform"`
}

// Armature is the armature binding that deforms the document.
type Armature struct {
	Name  string `yaml:"name"`
	Bones []Bone `yaml:"bones"`
}

// Document is a stroke object with its layers and metadata.
type Document struct {
	Name         string        `yaml:"name"`
	Layers       []*Layer      `yaml:"layers"`
	Materials    []Material    `yaml:"materials"`
	VertexGroups []VertexGroup `yaml:"vertex_groups,omitempty"`
	ActiveGroup  int           `yaml:"active_group"`
	Armature     *Armature     `yaml:"armature,omitempty"`
}

// Material returns material i, or a visible default for out-of-range indices.
func (d *Document) Material(i int) Material {
	if i < 0 || i >= len(d.Materials) {
		return Material{ShowStroke: true}
	}
	return d.Materials[i]
}

// GroupIndex returns the index of the named vertex group, or -1.
func (d *Document) GroupIndex(name string) int {
	for i, g := range d.VertexGroups {
		if g.Name == name {
			return i
		}
	}
	return -1
}

// PointCount returns the number of points across all layers and frames.
func (d *Document) PointCount() int {
	n := 0
	for _, l := range d.Layers {
		for _, f := range l.Frames {
			for _, s := range f.Strokes {
				n += len(s.Points)
			}
		}
	}
	return n
}
