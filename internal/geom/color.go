package geom

import "fmt"

// Color is linear RGB with components in [0,1].
type Color struct {
	R, G, B float64
}

func (c Color) Lerp(o Color, t float64) Color {
	return Color{c.R + (o.R-c.R)*t, c.G + (o.G-c.G)*t, c.B + (o.B-c.B)*t}
}

func (c Color) Scale(s float64) Color { return Color{c.R * s, c.G * s, c.B * s} }

// RGBA8 quantizes the colour to 8-bit channels with an opaque alpha.
func (c Color) RGBA8() (r, g, b, a uint8) {
	q := func(v float64) uint8 { return uint8(Clamp(v, 0, 1)*255 + 0.5) }
	return q(c.R), q(c.G), q(c.B), 255
}

func (c Color) Hex() string {
	r, g, b, _ := c.RGBA8()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Luma is the Rec. 601 brightness.
func (c Color) Luma() float64 { return 0.299*c.R + 0.587*c.G + 0.114*c.B }

var (
	White = Color{1, 1, 1}
	Black = Color{0, 0, 0}
)
