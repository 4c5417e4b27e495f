package gpdata

// DeformWeight is the weight of a point in one vertex group.
type DeformWeight struct {
	Group  int     `yaml:"group"`
	Weight float32 `yaml:"weight"`
}

// Weights is a sparse deform-weight record. Group indices are unique.
type Weights []DeformWeight

// Find returns the weight for group and whether an entry exists.
func (w Weights) Find(group int) (float32, bool) {
	for _, dw := range w {
		if dw.Group == group {
			return dw.Weight, true
		}
	}
	return 0, false
}

// Get returns the weight for group, zero when absent.
func (w Weights) Get(group int) float32 {
	v, _ := w.Find(group)
	return v
}

// Ensure returns the entry for group, appending a zero entry if missing.
// The pointer is valid until the next append.
func (w *Weights) Ensure(group int) *DeformWeight {
	for i := range *w {
		if (*w)[i].Group == group {
			return &(*w)[i]
		}
	}
	*w = append(*w, DeformWeight{Group: group})
	return &(*w)[len(*w)-1]
}

// Set stores a clamped weight for group, creating the entry if needed.
func (w *Weights) Set(group int, v float32) {
	w.Ensure(group).Weight = Clamp01(v)
}

// Clone returns an independent copy.
func (w Weights) Clone() Weights {
	if w == nil {
		return nil
	}
	out := make(Weights, len(w))
	copy(out, w)
	return out
}
