// Package weights keeps deform weights summing to one across the groups an
// armature deforms.
package weights

import (
	"github.com/Faultbox/gpaint/pkg/gpdata"
)

// lockEpsilon is the tolerance under which locked groups are considered to
// use up the whole weight budget.
const lockEpsilon = 1e-6

// Meta holds the per-group flags the normalizer reads. It is built once per
// brush session.
type Meta struct {
	BoneDeformed []bool
	Locked       []bool
}

// NewMeta derives group flags from the document. A group is bone-deformed
// when the armature has a deform bone of the same name.
func NewMeta(doc *gpdata.Document) Meta {
	n := len(doc.VertexGroups)
	m := Meta{
		BoneDeformed: make([]bool, n),
		Locked:       make([]bool, n),
	}
	deform := make(map[string]bool)
	if doc.Armature != nil {
		for _, b := range doc.Armature.Bones {
			if b.Deform {
				deform[b.Name] = true
			}
		}
	}
	for i, g := range doc.VertexGroups {
		m.BoneDeformed[i] = deform[g.Name]
		m.Locked[i] = g.Locked
	}
	return m
}

// AnyBoneDeformed reports whether at least one group is deformed by a bone.
func (m Meta) AnyBoneDeformed() bool {
	for _, d := range m.BoneDeformed {
		if d {
			return true
		}
	}
	return false
}

// IsLocked reports whether group g is locked.
func (m Meta) IsLocked(g int) bool {
	return g >= 0 && g < len(m.Locked) && m.Locked[g]
}

func (m Meta) isDeformed(g int) bool {
	return g >= 0 && g < len(m.BoneDeformed) && m.BoneDeformed[g]
}

// Normalizer rescales unlocked bone-deformed weights of a point so they sum
// to one together with the locked ones.
type Normalizer struct {
	Meta       Meta
	Active     int  // group being painted, -1 for none
	LockActive bool // never adjust the active group
}

// Normalize restores the weight sum of one point in place. The active group
// is first held fixed; if that leaves no way to reach one, and the group is
// not locked itself, a second pass may adjust it as well. It reports whether
// the sum is exactly one afterwards. Points with at most one entry are left
// alone.
func (n *Normalizer) Normalize(w gpdata.Weights) bool {
	if len(w) <= 1 {
		return true
	}
	if n.try(w, true) {
		return true
	}
	if n.LockActive || n.Meta.IsLocked(n.Active) {
		return false
	}
	return n.try(w, false)
}

func (n *Normalizer) locked(g int, holdActive bool) bool {
	if holdActive && g == n.Active {
		return true
	}
	return n.Meta.IsLocked(g)
}

func (n *Normalizer) try(w gpdata.Weights, holdActive bool) bool {
	var sum, sumLock, sumUnlock float32
	unlocked := 0
	for _, dw := range w {
		if !n.Meta.isDeformed(dw.Group) {
			continue
		}
		sum += dw.Weight
		if n.locked(dw.Group, holdActive) {
			sumLock += dw.Weight
		} else {
			sumUnlock += dw.Weight
			unlocked++
		}
	}

	if sum == 1 {
		return true
	}
	if unlocked == 0 {
		return false
	}

	scale := func(f func(float32) float32) {
		for i := range w {
			if n.Meta.isDeformed(w[i].Group) && !n.locked(w[i].Group, holdActive) {
				w[i].Weight = gpdata.Clamp01(f(w[i].Weight))
			}
		}
	}

	if sumLock >= 1-lockEpsilon {
		scale(func(float32) float32 { return 0 })
		return sumLock == 1
	}
	if sumUnlock != 0 {
		fac := (1 - sumLock) / sumUnlock
		scale(func(v float32) float32 { return v * fac })
	} else {
		share := (1 - sumLock) / float32(unlocked)
		scale(func(float32) float32 { return share })
	}
	return true
}
