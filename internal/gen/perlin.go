package gen

import (
	"math"

	"github.com/san-kum/vizvault/internal/geom"
	"github.com/san-kum/vizvault/internal/noise"
	"github.com/san-kum/vizvault/internal/palette"
	"github.com/san-kum/vizvault/internal/params"
)

const perlinSpacing = 0.8

var perlinBackground = palette.MustParse("#0c1116")

type perlinMap struct{}

func (perlinMap) Generate(p params.Set, c Clock, dst *geom.Frame) {
	grid := geom.ClampInt(p.Int("gridSize", 20), 6, 40)
	scale := p.Number("scale", 0.35)
	amp := p.Number("amplitude", 1.2)
	speed := p.Number("speed", 0.6)
	base := palette.MustParse(p.String("color", "#ffffff"))

	dst.Background = perlinBackground
	dst.Wireframe = p.Bool("wireframe", false)

	dark := palette.Shade(base, -0.45)
	light := palette.Shade(base, 0.45)
	half := float64(grid-1) / 2
	t := c.Elapsed * speed

	for zi := 0; zi < grid; zi++ {
		for xi := 0; xi < grid; xi++ {
			x := (float64(xi) - half) * perlinSpacing
			z := (float64(zi) - half) * perlinSpacing
			h := (noise.At(x*scale+t, z*scale+t) - 0.5) * 2 * amp
			dst.Instances = append(dst.Instances, geom.Instance{
				Shape:    geom.ShapeBox,
				Position: geom.V(x, h/2, z),
				Scale:    geom.V(0.8*0.65, math.Max(0.2, math.Abs(h)), 0.8*0.65),
				Color:    dark.Lerp(light, geom.Clamp(0.5+h*0.25, 0, 1)),
			})
		}
	}
}
