package gen

import (
	"math"

	"github.com/san-kum/vizvault/internal/geom"
	"github.com/san-kum/vizvault/internal/params"
)

const bloomSamples = 2400

// Superformula is the Gielis radius with a = b = 1.
func Superformula(theta, m, n1, n2, n3 float64) float64 {
	t1 := math.Pow(math.Abs(math.Cos(m*theta/4)), n2)
	t2 := math.Pow(math.Abs(math.Sin(m*theta/4)), n3)
	return math.Pow(t1+t2, -1/n1)
}

type bloomKey struct {
	m, n1, n2, n3 float64
	petals        int
}

type bloom struct {
	key       bloomKey
	built     bool
	positions []geom.Vec3
}

func (b *bloom) Generate(p params.Set, c Clock, dst *geom.Frame) {
	key := bloomKey{
		m:      p.Number("m", 7),
		n1:     p.Number("n1", 0.3),
		n2:     p.Number("n2", 1.7),
		n3:     p.Number("n3", 1.7),
		petals: geom.ClampInt(p.Int("petals", 6), 1, 16),
	}
	if !b.built || key != b.key {
		b.sample(key)
	}
	pal := paletteOf(p)
	size := p.Number("pointSize", 0.08)
	speed := p.Number("rotationSpeed", 0.5)

	dst.Background = pal.BackgroundColor()
	dst.Rotation = geom.V(0, c.Elapsed*speed*0.3, 0)

	den := float64(len(b.positions) - 1)
	for i, pos := range b.positions {
		dst.Points = append(dst.Points, geom.Point{
			Position: pos,
			Color:    pal.At(float64(i)/den*0.7 + 0.15),
			Size:     size,
		})
	}
}

func (b *bloom) sample(key bloomKey) {
	b.positions = b.positions[:0]
	for i := 0; i < bloomSamples; i++ {
		theta := float64(i) / bloomSamples * math.Pi * 2 * float64(key.petals)
		r := Superformula(theta, key.m, key.n1, key.n2, key.n3) * 5
		if math.IsNaN(r) || math.IsInf(r, 0) {
			r = 0
		}
		b.positions = append(b.positions, geom.V(
			math.Cos(theta)*r,
			math.Sin(theta*0.3)*0.8,
			math.Sin(theta)*r,
		))
	}
	b.key, b.built = key, true
}
