// Package noise implements 2D gradient noise over a seeded permutation table.
package noise

import (
	"math"

	"github.com/san-kum/vizvault/internal/prng"
)

// DefaultSeed seeds the shared table used by the noise map and terrain.
const DefaultSeed = 7

type Perlin struct {
	perm [512]int
}

// New builds a permutation table shuffled by a mulberry32 stream.
func New(seed uint32) *Perlin {
	var p [256]int
	for i := range p {
		p[i] = i
	}
	rand := prng.Mulberry32(seed)
	for i := 255; i > 0; i-- {
		j := int(math.Floor(rand() * float64(i+1)))
		p[i], p[j] = p[j], p[i]
	}
	n := &Perlin{}
	for i := 0; i < 512; i++ {
		n.perm[i] = p[i&255]
	}
	return n
}

var shared = New(DefaultSeed)

// At samples the default table.
func At(x, y float64) float64 { return shared.At(x, y) }

// At returns noise in [0,1].
func (n *Perlin) At(x, y float64) float64 {
	xf, yf := math.Floor(x), math.Floor(y)
	xi, yi := int(xf)&255, int(yf)&255
	x -= xf
	y -= yf
	u, v := fade(x), fade(y)

	aa := n.perm[n.perm[xi]+yi]
	ab := n.perm[n.perm[xi]+yi+1]
	ba := n.perm[n.perm[xi+1]+yi]
	bb := n.perm[n.perm[xi+1]+yi+1]

	x1 := lerp(grad(aa, x, y), grad(ba, x-1, y), u)
	x2 := lerp(grad(ab, x, y-1), grad(bb, x-1, y-1), u)
	return (lerp(x1, x2, v) + 1) / 2
}

func fade(t float64) float64 { return t * t * t * (t*(t*6-15) + 10) }

func lerp(a, b, t float64) float64 { return a + t*(b-a) }

func grad(hash int, x, y float64) float64 {
	switch hash & 3 {
	case 0:
		return x + y
	case 1, 2:
		return -x + y
	default:
		return -x - y
	}
}
