package aggregate

import (
	"sort"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/Faultbox/gpaint/internal/paint/hits"
	"github.com/Faultbox/gpaint/pkg/geom"
)

// Neighbor is a point returned by a nearest-neighbor query.
type Neighbor struct {
	ID     int
	Pos    geom.Vec2
	Weight float32
	Dist   float32
}

// Nearest is an append-only point cloud with a k-d tree that is rebuilt
// lazily before the first query after an insertion batch.
type Nearest struct {
	points  nearPoints
	scratch nearPoints
	seen    map[hits.Key]struct{}
	tree    *kdtree.Tree
	dirty   bool
}

// NewNearest creates an empty point cloud.
func NewNearest() *Nearest {
	return &Nearest{seen: make(map[hits.Key]struct{})}
}

// Reset empties the cloud, keeping allocated storage.
func (n *Nearest) Reset() {
	n.points = n.points[:0]
	clear(n.seen)
	n.tree = nil
	n.dirty = false
}

// Len returns the number of points in the cloud.
func (n *Nearest) Len() int {
	return len(n.points)
}

// Insert adds a point hit once per frame-local key. Fill hits are ignored.
func (n *Nearest) Insert(h hits.Hit) {
	if h.IsFill() {
		return
	}
	key := h.Key()
	if _, ok := n.seen[key]; ok {
		return
	}
	n.seen[key] = struct{}{}
	n.points = append(n.points, nearPoint{
		pos:    [2]float64{float64(h.Pos.X), float64(h.Pos.Y)},
		weight: h.Weight,
		id:     len(n.points),
	})
	n.dirty = true
}

// Point returns the position and weight of point id.
func (n *Nearest) Point(id int) (geom.Vec2, float32) {
	p := n.points[id]
	return geom.Vec2{X: float32(p.pos[0]), Y: float32(p.pos[1])}, p.weight
}

func (n *Nearest) rebuild() {
	n.scratch = append(n.scratch[:0], n.points...)
	n.tree = kdtree.New(n.scratch, false)
	n.dirty = false
}

// KNearest appends up to k neighbors of pos to dst, ordered by ascending
// distance.
func (n *Nearest) KNearest(dst []Neighbor, pos geom.Vec2, k int) []Neighbor {
	if k <= 0 || len(n.points) == 0 {
		return dst
	}
	if n.dirty || n.tree == nil {
		n.rebuild()
	}

	keep := kdtree.NewNKeeper(k)
	n.tree.NearestSet(keep, nearPoint{pos: [2]float64{float64(pos.X), float64(pos.Y)}})

	start := len(dst)
	for _, cd := range keep.Heap {
		if cd.Comparable == nil {
			continue
		}
		p := cd.Comparable.(nearPoint)
		dst = append(dst, Neighbor{
			ID:     p.id,
			Pos:    geom.Vec2{X: float32(p.pos[0]), Y: float32(p.pos[1])},
			Weight: p.weight,
			Dist:   math32.Sqrt(float32(cd.Dist)),
		})
	}
	found := dst[start:]
	sort.Slice(found, func(i, j int) bool {
		if found[i].Dist != found[j].Dist {
			return found[i].Dist < found[j].Dist
		}
		return found[i].ID < found[j].ID
	})
	return dst
}

type nearPoint struct {
	pos    [2]float64
	weight float32
	id     int
}

func (p nearPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return p.pos[d] - c.(nearPoint).pos[d]
}

func (p nearPoint) Dims() int { return 2 }

// Distance returns the squared Euclidean distance.
func (p nearPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(nearPoint)
	dx, dy := p.pos[0]-q.pos[0], p.pos[1]-q.pos[1]
	return dx*dx + dy*dy
}

type nearPoints []nearPoint

func (p nearPoints) Index(i int) kdtree.Comparable         { return p[i] }
func (p nearPoints) Len() int                              { return len(p) }
func (p nearPoints) Pivot(d kdtree.Dim) int                { return plane{Dim: d, nearPoints: p}.Pivot() }
func (p nearPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

// plane sorts points along one dimension for median partitioning.
type plane struct {
	kdtree.Dim
	nearPoints
}

func (p plane) Less(i, j int) bool {
	return p.nearPoints[i].pos[p.Dim] < p.nearPoints[j].pos[p.Dim]
}

func (p plane) Pivot() int {
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.nearPoints = p.nearPoints[start:end]
	return p
}

func (p plane) Swap(i, j int) {
	p.nearPoints[i], p.nearPoints[j] = p.nearPoints[j], p.nearPoints[i]
}
