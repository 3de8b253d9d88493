package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/vizvault/internal/geom"
)

func toColor(c geom.Color) rl.Color {
	r, g, b, a := c.RGBA8()
	return rl.NewColor(r, g, b, a)
}

func toVec(v geom.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

// DrawFrame draws one generated frame inside an active 3D mode. The group
// rotation is applied to positions on the CPU; boxes stay axis-aligned.
func DrawFrame(f *geom.Frame) {
	if f == nil {
		return
	}
	rot := f.Rotation
	for _, in := range f.Instances {
		pos := toVec(in.Position.Rotate(rot))
		col := toColor(in.Color)
		wire := f.Wireframe || in.Wireframe
		switch {
		case in.Shape == geom.ShapeSphere && wire:
			rl.DrawSphereWires(pos, float32(in.Scale.X), 8, 8, col)
		case in.Shape == geom.ShapeSphere:
			rl.DrawSphereEx(pos, float32(in.Scale.X), 8, 8, col)
		case wire:
			rl.DrawCubeWires(pos, float32(in.Scale.X), float32(in.Scale.Y), float32(in.Scale.Z), col)
		default:
			rl.DrawCube(pos, float32(in.Scale.X), float32(in.Scale.Y), float32(in.Scale.Z), col)
		}
	}
	for _, p := range f.Points {
		rl.DrawSphereEx(toVec(p.Position.Rotate(rot)), float32(p.Size/2), 4, 6, toColor(p.Color))
	}
	for _, pl := range f.Polylines {
		drawPolyline(pl, rot)
	}
	for _, s := range f.Segments {
		rl.DrawLine3D(toVec(s.A.Rotate(rot)), toVec(s.B.Rotate(rot)), toColor(s.Color))
	}
}

func drawPolyline(pl geom.Polyline, rot geom.Vec3) {
	n := len(pl.Points)
	if n < 2 {
		return
	}
	col := toColor(pl.Color)
	r := float32(pl.Thickness)
	seg := func(a, b geom.Vec3) {
		pa, pb := toVec(a.Rotate(rot)), toVec(b.Rotate(rot))
		if r <= 0 {
			rl.DrawLine3D(pa, pb, col)
			return
		}
		rl.DrawCylinderEx(pa, pb, r, r, 6, col)
	}
	for i := 1; i < n; i++ {
		seg(pl.Points[i-1], pl.Points[i])
	}
	if pl.Closed && n > 2 {
		seg(pl.Points[n-1], pl.Points[0])
	}
}
