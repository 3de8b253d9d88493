package gen

import (
	"math"

	"github.com/san-kum/vizvault/internal/geom"
	"github.com/san-kum/vizvault/internal/params"
	"github.com/san-kum/vizvault/internal/prng"
)

const voronoiExtent = 14

type voronoi struct{}

func (voronoi) Generate(p params.Set, c Clock, dst *geom.Frame) {
	cells := geom.ClampInt(p.Int("cellCount", 24), 4, 48)
	height := p.Number("height", 3)
	smoothing := p.Number("smoothing", 0.5)
	pal := paletteOf(p)

	dst.Background = pal.BackgroundColor()
	dst.Rotation = geom.V(0, c.Elapsed*0.05, 0)

	spacing := voronoiExtent / float64(cells)
	for y := 0; y < cells; y++ {
		for x := 0; x < cells; x++ {
			nx := float64(x) / float64(cells-1)
			ny := float64(y) / float64(cells-1)
			d, seedHeight := nearestSeed(nx, ny)
			falloff := math.Exp(-d * 6)
			blend := math.Pow(prng.Remap(falloff, 0, 1), 1.2-smoothing*0.6)
			h := seedHeight * blend * height
			dst.Instances = append(dst.Instances, geom.Instance{
				Shape:    geom.ShapeBox,
				Position: geom.V((nx-0.5)*voronoiExtent, h*0.5, (ny-0.5)*voronoiExtent),
				Scale:    geom.V(spacing*0.7, math.Max(0.1, h), spacing*0.7),
				Color:    pal.At(blend * 0.9),
			})
		}
	}
}

func nearestSeed(x, y float64) (dist, height float64) {
	dist = math.Inf(1)
	for _, s := range voronoiSeeds {
		d := math.Hypot(x-s.X, y-s.Y)
		if d < dist {
			dist, height = d, s.Height
		}
	}
	return dist, height
}
