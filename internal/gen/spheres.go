package gen

import (
	"math"

	"github.com/san-kum/vizvault/internal/geom"
	"github.com/san-kum/vizvault/internal/palette"
	"github.com/san-kum/vizvault/internal/params"
)

var (
	sunColor    = palette.MustParse("#ffcc66")
	planetColor = palette.MustParse("#66aaff")
)

type orbitingSpheres struct{}

func (orbitingSpheres) Generate(p params.Set, c Clock, dst *geom.Frame) {
	n := geom.ClampInt(p.Int("sphereCount", 25), 1, 200)
	radius := p.Number("orbitRadius", 8)
	speed := p.Number("rotationSpeed", 1.5)
	wire := p.Bool("wireframe", false)

	dst.Background = geom.Black
	dst.Rotation = geom.V(0, c.Elapsed*speed*0.3, 0)

	dst.Instances = append(dst.Instances, geom.Instance{
		Shape: geom.ShapeSphere,
		Scale: geom.V(1.2, 1.2, 1.2),
		Color: sunColor,
	})
	for i := 0; i < n; i++ {
		angle := float64(i) / float64(n) * math.Pi * 2
		dst.Instances = append(dst.Instances, geom.Instance{
			Shape:     geom.ShapeSphere,
			Position:  geom.V(math.Cos(angle)*radius, 0, math.Sin(angle)*radius),
			Scale:     geom.V(0.35, 0.35, 0.35),
			Color:     planetColor,
			Wireframe: wire,
		})
	}
}

func paletteOf(p params.Set) palette.Palette {
	return palette.Get(p.String("palette", ""))
}
