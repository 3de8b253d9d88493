package gen

import (
	"math"

	"github.com/san-kum/vizvault/internal/geom"
	"github.com/san-kum/vizvault/internal/params"
	"github.com/san-kum/vizvault/internal/prng"
)

const (
	ribbonTension  = 0.6
	ribbonSegments = 180
	knotSegments   = 120
)

type ribbonKey struct {
	count int
	twist float64
}

type ribbonFlow struct {
	key   ribbonKey
	built bool
	tubes [][]geom.Vec3
	knot  []geom.Vec3
}

func (r *ribbonFlow) Generate(p params.Set, c Clock, dst *geom.Frame) {
	key := ribbonKey{
		count: geom.ClampInt(p.Int("ribbonCount", 5), 2, 12),
		twist: p.Number("twist", 1.6),
	}
	if !r.built || key != r.key {
		r.sweep(key)
	}
	pal := paletteOf(p)
	thickness := p.Number("thickness", 0.18)
	speed := p.Number("speed", 1)
	t := c.Elapsed

	dst.Background = pal.BackgroundColor()
	dst.Rotation = geom.V(math.Sin(t*(0.3+speed*0.1))*0.18, t*(0.1+speed*0.08), 0)

	den := float64(max(1, len(r.tubes)-1))
	for i, tube := range r.tubes {
		pl := dst.Polyline(pal.At(float64(i)/den*0.8+0.1), thickness, true)
		pl.Points = append(pl.Points, tube...)
	}
	knot := dst.Polyline(pal.At(0.2), 0.18, true)
	knot.Points = append(knot.Points, r.knot...)
}

func (r *ribbonFlow) sweep(key ribbonKey) {
	base := ribbonPaths()
	r.tubes = r.tubes[:0]
	for i := 0; i < key.count; i++ {
		ctrl := base[i%len(base)]
		if i >= len(base) {
			ctrl = vecs(prng.RibbonPath(32, 6, key.twist+float64(i)*0.15, int32(50+i)))
		}
		r.tubes = append(r.tubes, sampleClosedCurve(nil, ctrl, ribbonTension, ribbonSegments))
	}
	if r.knot == nil {
		r.knot = torusKnot(nil, 2.2, 2, 3, knotSegments)
	}
	r.key, r.built = key, true
}
