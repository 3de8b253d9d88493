package gen

import (
	"github.com/san-kum/vizvault/internal/geom"
	"github.com/san-kum/vizvault/internal/params"
)

const maxFractalDepth = 3

// FractalPositions returns the leaf centres of a Menger-like subdivision of
// a cube of side 3: each level keeps the 20 sub-cells with fewer than two
// zero offsets. Depth is capped at 3.
func FractalPositions(depth int) []geom.Vec3 {
	depth = geom.ClampInt(depth, 0, maxFractalDepth)
	n := 1
	for i := 0; i < depth; i++ {
		n *= 20
	}
	out := make([]geom.Vec3, 0, n)
	var recurse func(size float64, centre geom.Vec3, level int)
	recurse = func(size float64, centre geom.Vec3, level int) {
		if level == 0 {
			out = append(out, centre)
			return
		}
		step := size / 3
		for x := -1; x <= 1; x++ {
			for y := -1; y <= 1; y++ {
				for z := -1; z <= 1; z++ {
					if zeros(x, y, z) >= 2 {
						continue
					}
					off := geom.V(float64(x)*step, float64(y)*step, float64(z)*step)
					recurse(step, centre.Add(off), level-1)
				}
			}
		}
	}
	recurse(3, geom.Vec3{}, depth)
	return out
}

func zeros(v ...int) int {
	n := 0
	for _, x := range v {
		if x == 0 {
			n++
		}
	}
	return n
}

type fractal struct {
	depth     int
	positions []geom.Vec3
}

func (f *fractal) Generate(p params.Set, c Clock, dst *geom.Frame) {
	depth := geom.ClampInt(p.Int("depth", 2), 1, maxFractalDepth)
	if f.positions == nil || depth != f.depth {
		f.positions = FractalPositions(depth)
		f.depth = depth
	}
	scale := p.Number("scale", 1.5)
	speed := p.Number("rotationSpeed", 0.6)
	pal := paletteOf(p)
	color := pal.At(0.55)
	size := scale * 0.5

	dst.Background = pal.BackgroundColor()
	dst.Wireframe = p.Bool("wireframe", false)
	dst.Rotation = geom.V(c.Elapsed*speed*0.3, c.Elapsed*speed*0.45, 0)

	for _, pos := range f.positions {
		dst.Instances = append(dst.Instances, geom.Instance{
			Shape:    geom.ShapeBox,
			Position: pos.Scale(scale),
			Scale:    geom.V(size, size, size),
			Color:    color,
		})
	}
}
