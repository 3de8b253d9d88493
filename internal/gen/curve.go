package gen

import (
	"math"

	"github.com/san-kum/vizvault/internal/geom"
)

// sampleClosedCurve samples a closed Catmull-Rom spline through ctrl at
// segments evenly spaced parameter values and appends them to dst.
func sampleClosedCurve(dst, ctrl []geom.Vec3, tension float64, segments int) []geom.Vec3 {
	n := len(ctrl)
	if n == 0 {
		return dst
	}
	if n == 1 {
		return append(dst, ctrl[0])
	}
	for s := 0; s < segments; s++ {
		p := float64(n) * float64(s) / float64(segments)
		i := int(math.Floor(p))
		w := p - float64(i)
		p0 := ctrl[(i-1+n)%n]
		p1 := ctrl[i%n]
		p2 := ctrl[(i+1)%n]
		p3 := ctrl[(i+2)%n]
		dst = append(dst, geom.Vec3{
			X: catmullRom(p0.X, p1.X, p2.X, p3.X, tension, w),
			Y: catmullRom(p0.Y, p1.Y, p2.Y, p3.Y, tension, w),
			Z: catmullRom(p0.Z, p1.Z, p2.Z, p3.Z, tension, w),
		})
	}
	return dst
}

// catmullRom evaluates the cubic Hermite segment between x1 and x2 with
// tangents tension*(x2-x0) and tension*(x3-x1).
func catmullRom(x0, x1, x2, x3, tension, t float64) float64 {
	t0 := tension * (x2 - x0)
	t1 := tension * (x3 - x1)
	c0 := x1
	c1 := t0
	c2 := -3*x1 + 3*x2 - 2*t0 - t1
	c3 := 2*x1 - 2*x2 + t0 + t1
	return c0 + c1*t + c2*t*t + c3*t*t*t
}

// torusKnot samples a (p,q) torus knot centreline.
func torusKnot(dst []geom.Vec3, radius float64, p, q, segments int) []geom.Vec3 {
	for i := 0; i < segments; i++ {
		u := float64(i) / float64(segments) * float64(p) * math.Pi * 2
		qu := float64(q) / float64(p) * u
		cs := math.Cos(qu)
		dst = append(dst, geom.Vec3{
			X: radius * (2 + cs) * 0.5 * math.Cos(u),
			Y: radius * (2 + cs) * 0.5 * math.Sin(u),
			Z: radius * math.Sin(qu) * 0.5,
		})
	}
	return dst
}
