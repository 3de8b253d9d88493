package geom

import "math"

type Vec3 struct {
	X, Y, Z float64
}

func V(x, y, z float64) Vec3 { return Vec3{x, y, z} }

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Distance(o Vec3) float64 {
	return v.Sub(o).Length()
}
func (v Vec3) Normalize() Vec3 {
	if l := v.Length(); l != 0 {
		return v.Scale(1 / l)
	}
	return Vec3{}
}
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}

// Lerp returns v + (o-v)*t.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t, v.Z + (o.Z-v.Z)*t}
}

// Rotate applies an intrinsic XYZ Euler rotation (radians): Z is applied
// first, then Y, then X.
func (v Vec3) Rotate(r Vec3) Vec3 {
	if r.Z != 0 {
		c, s := math.Cos(r.Z), math.Sin(r.Z)
		v.X, v.Y = v.X*c-v.Y*s, v.X*s+v.Y*c
	}
	if r.Y != 0 {
		c, s := math.Cos(r.Y), math.Sin(r.Y)
		v.X, v.Z = v.X*c+v.Z*s, -v.X*s+v.Z*c
	}
	if r.X != 0 {
		c, s := math.Cos(r.X), math.Sin(r.X)
		v.Y, v.Z = v.Y*c-v.Z*s, v.Y*s+v.Z*c
	}
	return v
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
