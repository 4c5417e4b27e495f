package geom

// SegmentDistSq returns the squared distance from p to the closed segment a-b.
func SegmentDistSq(p, a, b Vec2) float32 {
	ab := b.Sub(a)
	l := ab.LengthSq()
	if l == 0 {
		return p.Sub(a).LengthSq()
	}
	t := p.Sub(a).Dot(ab) / l
	switch {
	case t <= 0:
		return p.Sub(a).LengthSq()
	case t >= 1:
		return p.Sub(b).LengthSq()
	}
	return p.Sub(a.Add(ab.Scale(t))).LengthSq()
}

// SegmentInsideCircle reports whether any part of the segment a-b lies within
// radius of center.
func SegmentInsideCircle(center Vec2, radius float32, a, b Pixel) bool {
	return SegmentDistSq(center, a.Vec2(), b.Vec2()) <= radius*radius
}

// PointInPolygon reports whether p is inside the closed polygon using the
// even-odd crossing rule.
func PointInPolygon(poly []Pixel, p Pixel) bool {
	if len(poly) < 3 {
		return false
	}
	inside := false
	j := len(poly) - 1
	for i := range poly {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			// x of the edge at p.Y
			x := float32(b.X-a.X)*float32(p.Y-a.Y)/float32(b.Y-a.Y) + float32(a.X)
			if float32(p.X) < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// PolygonBounds returns the bounding rectangle of the polygon.
func PolygonBounds(poly []Pixel) Rect {
	if len(poly) == 0 {
		return Rect{}
	}
	r := Rect{poly[0].X, poly[0].Y, poly[0].X, poly[0].Y}
	for _, p := range poly[1:] {
		r.MinX = min(r.MinX, p.X)
		r.MinY = min(r.MinY, p.Y)
		r.MaxX = max(r.MaxX, p.X)
		r.MaxY = max(r.MaxY, p.Y)
	}
	return r
}
