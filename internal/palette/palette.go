// Package palette holds the named gradient palettes shared by the generators.
package palette

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/vizvault/internal/geom"
)

type Palette struct {
	Name       string
	Background string
	Stops      []string
}

var Palettes = []Palette{
	{Name: "infrared", Background: "#06070d", Stops: []string{"#0ff0fc", "#7a5bff", "#ff2d92", "#ffc94f"}},
	{Name: "aurora", Background: "#050b0f", Stops: []string{"#0affef", "#26ff75", "#d6ff4f", "#ff8a00"}},
	{Name: "nocturne", Background: "#0a0c11", Stops: []string{"#5af0ff", "#6d7dff", "#c179ff", "#ffb5f0"}},
	{Name: "sunken", Background: "#050608", Stops: []string{"#8df7ff", "#3b8bff", "#1137ff", "#090d1f"}},
}

// Get returns the named palette, or the first palette for unknown names.
func Get(name string) Palette {
	for _, p := range Palettes {
		if p.Name == name {
			return p
		}
	}
	return Palettes[0]
}

func Names() []string {
	names := make([]string, len(Palettes))
	for i, p := range Palettes {
		names[i] = p.Name
	}
	return names
}

// Swatches lists every distinct palette stop, in palette order.
func Swatches() []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range Palettes {
		for _, s := range p.Stops {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// At samples the palette gradient at t, clamped to [0,1].
func (p Palette) At(t float64) geom.Color {
	t = math.Min(1, math.Max(0, t))
	scaled := t * float64(len(p.Stops)-1)
	idx := int(math.Floor(scaled))
	frac := scaled - float64(idx)
	next := idx + 1
	if next > len(p.Stops)-1 {
		next = len(p.Stops) - 1
	}
	start := MustParse(p.Stops[idx])
	end := MustParse(p.Stops[next])
	return blend(start, end, frac)
}

func (p Palette) BackgroundColor() geom.Color { return MustParse(p.Background) }

// At is shorthand for Get(name).At(t).
func At(name string, t float64) geom.Color { return Get(name).At(t) }

// Parse reads a #rrggbb (or #rgb) colour.
func Parse(hex string) (geom.Color, error) {
	c, err := colorful.Hex(expandShort(hex))
	if err != nil {
		return geom.Color{}, fmt.Errorf("palette: invalid colour %q: %w", hex, err)
	}
	return geom.Color{R: c.R, G: c.G, B: c.B}, nil
}

// MustParse is Parse for compile-time constants; invalid input yields black.
func MustParse(hex string) geom.Color {
	c, err := Parse(hex)
	if err != nil {
		return geom.Black
	}
	return c
}

// Shade blends base toward white (amount > 0) or black (amount < 0).
func Shade(base geom.Color, amount float64) geom.Color {
	if amount >= 0 {
		return blend(base, geom.White, amount)
	}
	return blend(base, geom.Black, -amount)
}

func blend(a, b geom.Color, t float64) geom.Color {
	c := colorful.Color{R: a.R, G: a.G, B: a.B}.BlendRgb(colorful.Color{R: b.R, G: b.G, B: b.B}, t)
	return geom.Color{R: c.R, G: c.G, B: c.B}
}

func expandShort(hex string) string {
	if len(hex) == 4 && hex[0] == '#' {
		return string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
	}
	return hex
}
