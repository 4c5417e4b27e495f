package curve

// gaussPoints is the default multi-frame falloff: a bell peaking at the
// active frame (x = 0.5).
var gaussPoints = []Point{
	{0, 0.025},
	{0.1, 0.135},
	{0.298, 0.36},
	{0.5, 1},
	{0.7, 0.36},
	{0.9, 0.135},
	{1, 0.025},
}

// Gauss returns the default multi-frame falloff curve.
func Gauss() *Curve {
	c, err := New(gaussPoints)
	if err != nil {
		panic(err)
	}
	return c
}

// FrameFalloff returns the temporal falloff for frame number n given the
// active frame and the selected range [first, last]. The curve is sampled on
// [0, 0.5] for frames before the active one and on [0.5, 1] for frames after
// it. A nil curve disables falloff.
func FrameFalloff(c *Curve, n, active, first, last int) float32 {
	if c == nil {
		return 1
	}
	var x float32
	switch {
	case n < active && active > first:
		x = 0.5 * float32(n-first) / float32(active-first)
	case n > active && last > active:
		x = 0.5 + 0.5*float32(n-active)/float32(last-active)
	default:
		x = 0.5
	}
	return c.Eval(x)
}
