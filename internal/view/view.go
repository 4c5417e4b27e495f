// Package view projects layer-space stroke points into viewport pixels.
package view

import (
	"github.com/Faultbox/gpaint/pkg/geom"
)

// Converter projects points through a view-projection matrix into a
// width x height viewport with the origin at the bottom-left.
type Converter struct {
	ViewProj geom.Mat4
	Width    int
	Height   int

	lastLayer geom.Mat4
	combined  geom.Mat4
	cached    bool
}

// New creates a converter for the given view-projection matrix.
func New(viewProj geom.Mat4, width, height int) *Converter {
	return &Converter{ViewProj: viewProj, Width: width, Height: height}
}

// NewOrtho creates a 2D canvas converter where one world unit is one pixel.
func NewOrtho(width, height int) *Converter {
	return New(geom.Ortho(0, float32(width), 0, float32(height), -1000, 1000), width, height)
}

// NewPerspective creates a camera converter looking from eye at center.
// fovY is in radians.
func NewPerspective(eye, center geom.Vec3, fovY float32, width, height int) *Converter {
	aspect := float32(width) / float32(height)
	proj := geom.Perspective(fovY, aspect, 0.1, 1000)
	v := geom.LookAt(eye, center, geom.Vec3{Y: 1})
	return New(proj.Mul(v), width, height)
}

// ToScreen projects p, given in layer space, to a pixel. It reports false when
// the point is behind the camera or outside the depth range.
func (c *Converter) ToScreen(p geom.Vec3, layer geom.Mat4) (geom.Pixel, bool) {
	if !c.cached || layer != c.lastLayer {
		c.combined = c.ViewProj.Mul(layer)
		c.lastLayer = layer
		c.cached = true
	}

	clip := c.combined.MulVec4(geom.Vec4{p.X, p.Y, p.Z, 1})
	w := clip[3]
	if w <= 0 {
		return geom.Pixel{}, false
	}
	z := clip[2] / w
	if z < -1 || z > 1 {
		return geom.Pixel{}, false
	}

	screen := geom.Vec2{
		X: (clip[0]/w + 1) * 0.5 * float32(c.Width),
		Y: (clip[1]/w + 1) * 0.5 * float32(c.Height),
	}
	return screen.Round(), true
}
