package hits

import (
	"github.com/Faultbox/gpaint/internal/paint/brush"
	"github.com/Faultbox/gpaint/pkg/geom"
	"github.com/Faultbox/gpaint/pkg/gpdata"
)

// Query describes one selection pass over a frame.
type Query struct {
	// Footprint is the brush circle.
	Footprint brush.Footprint
	// Search is the circle segments are tested against. A zero radius
	// means Footprint.
	Search brush.Footprint
	// Strict keeps only points inside Footprint in the hit buffer; other
	// points found through Search still reach Nearby.
	Strict bool
	// Mask restricts painting to selected points.
	Mask bool
	// Fill synthesizes fill hits when the cursor is inside a filled stroke
	// that no segment touched.
	Fill bool
	// Group is the vertex group whose weight is snapshotted, -1 for none.
	Group int
	// Nearby, when set, receives every point found inside Search.
	Nearby Neighbors
}

// Selector walks the strokes of a frame and collects hits. Its buffers are
// reused between calls.
type Selector struct {
	Converter SpaceConverter
	Doc       *gpdata.Document

	buf  []Hit
	poly []geom.Pixel
}

// NewSelector creates a selector for a document.
func NewSelector(doc *gpdata.Document, conv SpaceConverter) *Selector {
	return &Selector{Doc: doc, Converter: conv}
}

// Reset clears the hit buffer, keeping its capacity.
func (s *Selector) Reset() {
	s.buf = s.buf[:0]
}

// Hits returns the hits collected since the last Reset.
func (s *Selector) Hits() []Hit {
	return s.buf
}

// Select appends the hits of every stroke in frame and returns the buffer.
func (s *Selector) Select(frame *gpdata.Frame, layer geom.Mat4, q Query) []Hit {
	if q.Search.Radius == 0 {
		q.Search = q.Footprint
	}
	for i, st := range frame.Strokes {
		s.selectStroke(st, i, layer, &q)
	}
	return s.buf
}

func (s *Selector) selectStroke(st *gpdata.Stroke, si int, layer geom.Mat4, q *Query) {
	n := len(st.Points)
	if n == 0 {
		return
	}
	mat := s.Doc.Material(st.Original().Material)
	if !mat.Editable() {
		return
	}
	if !s.collides(st, layer, q.Search) {
		return
	}

	hit := false
	if n == 1 {
		if q.Mask && !s.selected(st, 0) {
			return
		}
		pc, ok := s.Converter.ToScreen(st.Points[0].Pos, layer)
		if ok && q.Search.BoundingRect().Contains(pc) && q.Search.PointInRadius(pc) {
			hit = s.add(st, si, 0, pc, q)
		}
	} else {
		hit = s.selectSegments(st, si, layer, q)
	}

	if !hit && q.Fill && mat.ShowFill {
		s.selectFill(st, si, layer, q)
	}
}

// selectSegments tests consecutive point pairs. A point is added with the
// segment that starts at it; the final point is added with the last segment,
// and includeLast picks up the end of an accepted segment whose successor
// missed.
func (s *Selector) selectSegments(st *gpdata.Stroke, si int, layer geom.Mat4, q *Query) bool {
	rect := q.Search.BoundingRect()
	includeLast := false
	hit := false

	for i := 0; i+1 < len(st.Points); i++ {
		if q.Mask && !s.selected(st, i) && !s.selected(st, i+1) {
			if includeLast {
				if pc, ok := s.Converter.ToScreen(st.Points[i].Pos, layer); ok {
					hit = s.add(st, si, i, pc, q) || hit
				}
			}
			includeLast = false
			continue
		}

		pc1, ok1 := s.Converter.ToScreen(st.Points[i].Pos, layer)
		pc2, ok2 := s.Converter.ToScreen(st.Points[i+1].Pos, layer)
		touched := ok1 && ok2 &&
			rect.Intersects(geom.SpanRect(pc1, pc2)) &&
			q.Search.SegmentIntersects(pc1, pc2)

		switch {
		case touched:
			hit = s.add(st, si, i, pc1, q) || hit
			if i+1 == len(st.Points)-1 {
				hit = s.add(st, si, i+1, pc2, q) || hit
				includeLast = false
			} else {
				includeLast = true
			}
		case includeLast && ok1:
			hit = s.add(st, si, i, pc1, q) || hit
			includeLast = false
		default:
			includeLast = false
		}
	}
	return hit
}

func (s *Selector) selected(st *gpdata.Stroke, i int) bool {
	orig, ok := st.OriginalIndex(i)
	if !ok {
		return false
	}
	return st.Original().Points[orig].Selected
}

// add records point i of st. It reports whether the point is paintable.
func (s *Selector) add(st *gpdata.Stroke, si, i int, pc geom.Pixel, q *Query) bool {
	orig, ok := st.OriginalIndex(i)
	if !ok {
		return false
	}
	target := st.Original()
	pt := &target.Points[orig]

	h := Hit{
		Stroke:      target,
		StrokeIndex: si,
		Index:       orig,
		Pos:         pc,
		Color:       pt.Color,
	}
	if q.Group >= 0 {
		h.Weight = pt.Weights.Get(q.Group)
	}

	if q.Nearby != nil {
		q.Nearby.Insert(h)
	}
	if q.Strict && !q.Footprint.PointInRadius(pc) {
		return true
	}
	s.buf = append(s.buf, h)
	return true
}

func (s *Selector) selectFill(st *gpdata.Stroke, si int, layer geom.Mat4, q *Query) {
	s.poly = s.poly[:0]
	for _, p := range st.Points {
		pc, ok := s.Converter.ToScreen(p.Pos, layer)
		if !ok {
			return
		}
		s.poly = append(s.poly, pc)
	}
	center := q.Footprint.Pixel()
	if !geom.PolygonBounds(s.poly).Contains(center) || !geom.PointInPolygon(s.poly, center) {
		return
	}

	target := st.Original()
	for i := 0; i < FillRepeat; i++ {
		s.buf = append(s.buf, Hit{
			Stroke:      target,
			StrokeIndex: si,
			Index:       FillIndex,
			Pos:         center,
			Color:       target.FillColor,
		})
	}
}

// collides is the coarse whole-stroke test: the projected bounding box of the
// stroke against the padded brush rectangle.
func (s *Selector) collides(st *gpdata.Stroke, layer geom.Mat4, fp brush.Footprint) bool {
	var r geom.Rect
	found := false
	for _, c := range st.Bounds().Corners() {
		pc, ok := s.Converter.ToScreen(c, layer)
		if !ok {
			continue
		}
		if !found {
			r = geom.Rect{MinX: pc.X, MinY: pc.Y, MaxX: pc.X, MaxY: pc.Y}
			found = true
			continue
		}
		r.MinX = min(r.MinX, pc.X)
		r.MinY = min(r.MinY, pc.Y)
		r.MaxX = max(r.MaxX, pc.X)
		r.MaxY = max(r.MaxY, pc.Y)
	}
	return found && r.Intersects(fp.CollisionRect())
}
