package geom

// Rect is an inclusive pixel rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// RectAround returns the square [c-r, c+r] in both axes.
func RectAround(c Pixel, r int) Rect {
	return Rect{c.X - r, c.Y - r, c.X + r, c.Y + r}
}

// Contains reports whether p lies inside r, borders included.
func (r Rect) Contains(p Pixel) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Intersects reports whether the two rectangles share at least one pixel.
func (r Rect) Intersects(o Rect) bool {
	return r.MinX <= o.MaxX && o.MinX <= r.MaxX && r.MinY <= o.MaxY && o.MinY <= r.MaxY
}

// Box3 is an axis-aligned 3D bounding box.
type Box3 struct {
	Min, Max Vec3
}

// Corners returns the eight corners of the box.
func (b Box3) Corners() [8]Vec3 {
	return [8]Vec3{
		{b.Min.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z},
		{b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z},
		{b.Max.X, b.Max.Y, b.Max.Z},
	}
}

// SpanRect returns the smallest rectangle containing a and b.
func SpanRect(a, b Pixel) Rect {
	return Rect{min(a.X, b.X), min(a.Y, b.Y), max(a.X, b.X), max(a.Y, b.Y)}
}
