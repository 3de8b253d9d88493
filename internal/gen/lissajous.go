package gen

import (
	"math"

	"github.com/san-kum/vizvault/internal/geom"
	"github.com/san-kum/vizvault/internal/params"
)

const (
	lissajousControl  = 120
	lissajousSegments = 360
)

type lissajousKey struct {
	count int
	twist float64
}

type lissajous struct {
	key   lissajousKey
	built bool
	loops [][]geom.Vec3
}

func (l *lissajous) Generate(p params.Set, c Clock, dst *geom.Frame) {
	key := lissajousKey{
		count: geom.ClampInt(p.Int("ribbonCount", 4), 1, 12),
		twist: p.Number("twist", 2),
	}
	if !l.built || key != l.key {
		l.loops = l.loops[:0]
		for i := 0; i < key.count; i++ {
			l.loops = append(l.loops, sampleClosedCurve(nil, lissajousLoop(i, key.twist), 0.5, lissajousSegments))
		}
		l.key, l.built = key, true
	}
	pal := paletteOf(p)
	thickness := p.Number("thickness", 0.12)
	speed := p.Number("speed", 1)
	t := c.Elapsed

	dst.Background = pal.BackgroundColor()
	dst.Rotation = geom.V(math.Sin(t*0.6)*0.2, t*(0.08+speed*0.05), 0)

	den := float64(max(1, len(l.loops)-1))
	for i, loop := range l.loops {
		pl := dst.Polyline(pal.At(float64(i)/den*0.7+0.15), thickness, true)
		pl.Points = append(pl.Points, loop...)
	}
	dst.Instances = append(dst.Instances, geom.Instance{
		Shape: geom.ShapeSphere,
		Scale: geom.V(0.6, 0.6, 0.6),
		Color: pal.At(0.35),
	})
}

// lissajousLoop returns the control points of loop idx. The last point
// repeats the first.
func lissajousLoop(idx int, twist float64) []geom.Vec3 {
	phase := float64(idx) * 0.6
	pts := make([]geom.Vec3, 0, lissajousControl+1)
	for i := 0; i <= lissajousControl; i++ {
		t := float64(i) / lissajousControl * math.Pi * 2
		pts = append(pts, geom.V(
			math.Sin(t*2+phase)*6,
			math.Sin(t*3+phase)*3,
			math.Cos(t*twist+phase)*6,
		))
	}
	return pts
}
