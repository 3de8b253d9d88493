// Package prng provides the small deterministic random streams the scene
// generators are seeded with.
package prng

import "math"

// Source yields floats in [0,1).
type Source func() float64

// Seeded is a 32-bit xorshift stream. The seed is post-incremented on every
// draw, so two streams with the same seed produce identical sequences.
func Seeded(seed int32) Source {
	s := seed
	return func() float64 {
		x := s
		s++
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		v := int64(x)
		if v < 0 {
			v = -v
		}
		return float64(v%100000) / 100000
	}
}

// Mulberry32 is the mulberry32 generator.
func Mulberry32(seed uint32) Source {
	a := seed
	return func() float64 {
		a += 0x6d2b79f5
		t := a
		t = (t ^ t>>15) * (t | 1)
		t ^= t + (t^t>>7)*(t|61)
		return float64(t^t>>14) / 4294967296
	}
}

// RadialPoints samples count points uniformly inside a ball of the given
// radius.
func RadialPoints(count int, radius float64, seed int32) [][3]float64 {
	rand := Seeded(seed)
	pts := make([][3]float64, 0, count)
	for i := 0; i < count; i++ {
		r := radius * math.Cbrt(rand())
		theta := rand() * math.Pi * 2
		phi := math.Acos(2*rand() - 1)
		pts = append(pts, [3]float64{
			r * math.Sin(phi) * math.Cos(theta),
			r * math.Cos(phi),
			r * math.Sin(phi) * math.Sin(theta),
		})
	}
	return pts
}

// RibbonPath returns a jittered helix of length control points.
func RibbonPath(length int, radius, twist float64, seed int32) [][3]float64 {
	rand := Seeded(seed)
	pts := make([][3]float64, 0, length)
	den := float64(max(1, length-1))
	for i := 0; i < length; i++ {
		t := float64(i) / den
		angle := t*math.Pi*2*twist + rand()*0.6
		r := radius * (0.6 + rand()*0.4)
		y := (t - 0.5) * radius * 1.2
		pts = append(pts, [3]float64{
			math.Cos(angle) * r,
			y + math.Sin(angle*0.5)*radius*0.3,
			math.Sin(angle) * r,
		})
	}
	return pts
}

// Remap maps v from [inMin,inMax] onto [0,1], clamped.
func Remap(v, inMin, inMax float64) float64 {
	if inMax == inMin {
		return 0
	}
	t := (v - inMin) / (inMax - inMin)
	return math.Min(1, math.Max(0, t))
}
