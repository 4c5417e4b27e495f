package gpdata

// Color is a straight-alpha linear RGBA color.
type Color struct {
	R float32 `yaml:"r"`
	G float32 `yaml:"g"`
	B float32 `yaml:"b"`
	A float32 `yaml:"a"`
}

// RGB is a color without alpha.
type RGB struct {
	R, G, B float32
}

// RGB drops the alpha channel.
func (c Color) RGB() RGB {
	return RGB{c.R, c.G, c.B}
}

// WithRGB returns c with its color channels replaced.
func (c Color) WithRGB(rgb RGB) Color {
	return Color{rgb.R, rgb.G, rgb.B, c.A}
}

// Clamp limits every channel to [0,1].
func (c Color) Clamp() Color {
	return Color{Clamp01(c.R), Clamp01(c.G), Clamp01(c.B), Clamp01(c.A)}
}

// Add returns the component sum.
func (c RGB) Add(o RGB) RGB {
	return RGB{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Sub returns the component difference.
func (c RGB) Sub(o RGB) RGB {
	return RGB{c.R - o.R, c.G - o.G, c.B - o.B}
}

// Scale multiplies every channel by s.
func (c RGB) Scale(s float32) RGB {
	return RGB{c.R * s, c.G * s, c.B * s}
}

// Lerp interpolates from c towards o by t.
func (c RGB) Lerp(o RGB, t float32) RGB {
	return RGB{
		c.R + (o.R-c.R)*t,
		c.G + (o.G-c.G)*t,
		c.B + (o.B-c.B)*t,
	}
}

// Clamp01 limits v to [0,1].
func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
