package viz

import (
	"math"
	"sort"

	"github.com/san-kum/vizvault/internal/geom"
)

// Camera manages 3D projection to a 2D plane.
type Camera struct {
	Position         geom.Vec3
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
	// Unit scales world units so that a frame of radius 1/Unit fills
	// roughly two thirds of the shorter screen side.
	Unit float64
}

func NewCamera() *Camera {
	return &Camera{Position: geom.Vec3{Z: 50}, Near: 0.1, Zoom: 1.0, Unit: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// Reset restores the default orientation and zoom, keeping Unit.
func (c *Camera) Reset() {
	c.RotX, c.RotY, c.RotZ, c.Zoom = 0, 0, 0, 1
}

// Fit picks Unit so that a scene of the given bounding radius fits the view.
func (c *Camera) Fit(radius float64) {
	if radius <= 1e-9 {
		c.Unit = 1
		return
	}
	c.Unit = 1.4 / radius
}

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p geom.Vec3) geom.Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

func (c *Camera) pixelScale(sw, sh int) float64 {
	return math.Min(float64(sw), float64(sh)) / 3.0
}

// Project converts 3D world coordinates to 2D screen coordinates.
// Returns x, y, depth, and visibility. Larger depth is nearer the camera.
func (c *Camera) Project(p geom.Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom * c.Unit)
	dist := c.Position.Z
	if rot.Z >= dist-c.Near {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z)
	pScale := c.pixelScale(sw, sh)
	sx := int(math.Round(rot.X*scale*pScale)) + sw/2
	sy := int(math.Round(-rot.Y*scale*pScale)) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

// Radius converts a world-space radius at the given depth into screen units.
func (c *Camera) Radius(r, depth float64, sw, sh int) int {
	dist := c.Position.Z
	if depth >= dist-c.Near {
		return 0
	}
	scale := dist / (dist - depth)
	return int(r * c.Zoom * c.Unit * scale * c.pixelScale(sw, sh))
}

type Edge struct {
	Start, End geom.Vec3
	Color      geom.Color
	// Size is a world-space dot radius for point edges.
	Size float64
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e geom.Vec3, c geom.Color) {
	w.Edges = append(w.Edges, Edge{Start: s, End: e, Color: c})
}
func (w *Wireframe) AddPoint(p geom.Vec3, c geom.Color, size float64) {
	w.Edges = append(w.Edges, Edge{Start: p, End: p, Color: c, Size: size})
}
func (w *Wireframe) Clear() { w.Edges = w.Edges[:0] }

// AddBox adds the twelve edges of an axis-aligned box with the given full
// extents.
func (w *Wireframe) AddBox(center, extents geom.Vec3, rot geom.Vec3, c geom.Color) {
	h := extents.Scale(0.5)
	v := [8]geom.Vec3{
		{X: -h.X, Y: -h.Y, Z: -h.Z}, {X: h.X, Y: -h.Y, Z: -h.Z}, {X: h.X, Y: h.Y, Z: -h.Z}, {X: -h.X, Y: h.Y, Z: -h.Z},
		{X: -h.X, Y: -h.Y, Z: h.Z}, {X: h.X, Y: -h.Y, Z: h.Z}, {X: h.X, Y: h.Y, Z: h.Z}, {X: -h.X, Y: h.Y, Z: h.Z},
	}
	for i := range v {
		v[i] = center.Add(v[i]).Rotate(rot)
	}
	ei := [12][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	for _, e := range ei {
		w.AddEdge(v[e[0]], v[e[1]], c)
	}
}

// AddAxes adds unit axes of length l coloured red, green and blue.
func (w *Wireframe) AddAxes(l float64) {
	o := geom.Vec3{}
	w.AddEdge(o, geom.Vec3{X: l}, geom.Color{R: 1, G: 0.3, B: 0.3})
	w.AddEdge(o, geom.Vec3{Y: l}, geom.Color{R: 0.3, G: 1, B: 0.3})
	w.AddEdge(o, geom.Vec3{Z: l}, geom.Color{R: 0.3, G: 0.5, B: 1})
}

// FromFrame converts a frame into edges in world space, applying the frame's
// group rotation.
func (w *Wireframe) FromFrame(f *geom.Frame) {
	if f == nil {
		return
	}
	rot := f.Rotation
	for _, in := range f.Instances {
		if in.Shape == geom.ShapeSphere {
			w.AddPoint(in.Position.Rotate(rot), in.Color, in.Scale.X)
			continue
		}
		w.AddBox(in.Position, in.Scale, rot, in.Color)
	}
	for _, p := range f.Points {
		w.AddPoint(p.Position.Rotate(rot), p.Color, p.Size/2)
	}
	for _, pl := range f.Polylines {
		n := len(pl.Points)
		if n == 1 {
			w.AddPoint(pl.Points[0].Rotate(rot), pl.Color, pl.Thickness)
			continue
		}
		for i := 1; i < n; i++ {
			w.AddEdge(pl.Points[i-1].Rotate(rot), pl.Points[i].Rotate(rot), pl.Color)
		}
		if pl.Closed && n > 2 {
			w.AddEdge(pl.Points[n-1].Rotate(rot), pl.Points[0].Rotate(rot), pl.Color)
		}
	}
	for _, s := range f.Segments {
		w.AddEdge(s.A.Rotate(rot), s.B.Rotate(rot), s.Color)
	}
}

type ProjectedEdge struct {
	X1, Y1, X2, Y2 int
	Radius         int
	Depth          float64
	Color          geom.Color
}

// Project maps every visible edge to screen space, sorted far to near.
func (w *Wireframe) Project(cam *Camera, sw, sh int) []ProjectedEdge {
	proj := make([]ProjectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, sw, sh)
		x2, y2, d2, v2 := cam.Project(e.End, sw, sh)
		if !v1 && !v2 {
			continue
		}
		depth := (d1 + d2) / 2
		pe := ProjectedEdge{X1: x1, Y1: y1, X2: x2, Y2: y2, Depth: depth, Color: e.Color}
		if e.Size > 0 {
			pe.Radius = cam.Radius(e.Size, depth, sw, sh)
		}
		proj = append(proj, pe)
	}
	sort.SliceStable(proj, func(i, j int) bool { return proj[i].Depth < proj[j].Depth })
	return proj
}

// Render3D draws the wireframe to the canvas using a simple painter's algorithm.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	sw, sh := c.Dots()
	for _, e := range w.Project(cam, sw, sh) {
		c.Pen(e.Color)
		if e.X1 == e.X2 && e.Y1 == e.Y2 {
			c.DrawDisc(e.X1, e.Y1, min(e.Radius, 6))
		} else {
			c.DrawLine(e.X1, e.Y1, e.X2, e.Y2)
		}
	}
}

// DrawFrame clears the canvas and draws one generated frame.
func DrawFrame(c *Canvas, f *geom.Frame, cam *Camera) {
	if c == nil {
		return
	}
	c.Clear()
	w := NewWireframe()
	w.FromFrame(f)
	Render3D(c, w, cam)
}
