package geom

type Shape uint8

const (
	ShapeBox Shape = iota
	ShapeSphere
)

func (s Shape) String() string {
	if s == ShapeSphere {
		return "sphere"
	}
	return "box"
}

// Instance is one transformed mesh copy.
// Instance is one mesh copy. Wireframe marks this instance alone; the
// frame-wide flag covers everything.
type Instance struct {
	Shape     Shape
	Position  Vec3
	Scale     Vec3
	Color     Color
	Wireframe bool
}

type Point struct {
	Position Vec3
	Color    Color
	Size     float64
}

// Polyline is a tube centreline; Closed joins the last point to the first.
type Polyline struct {
	Points    []Vec3
	Color     Color
	Thickness float64
	Closed    bool
}

type Segment struct {
	A, B  Vec3
	Color Color
}

// Frame is the geometry produced by one generator pass.
type Frame struct {
	Index      uint64
	Instances  []Instance
	Points     []Point
	Polylines  []Polyline
	Segments   []Segment
	Rotation   Vec3
	Background Color
	Wireframe  bool
}

// Reset empties the frame while keeping slice capacity. Polyline point
// slices are recycled too.
func (f *Frame) Reset() {
	f.Instances = f.Instances[:0]
	f.Points = f.Points[:0]
	for i := range f.Polylines {
		f.Polylines[i].Points = f.Polylines[i].Points[:0]
	}
	f.Polylines = f.Polylines[:0]
	f.Segments = f.Segments[:0]
	f.Rotation = Vec3{}
	f.Background = Color{}
	f.Wireframe = false
}

// Polyline appends a polyline, reusing a previously allocated point slice when
// one is available in the backing array.
func (f *Frame) Polyline(c Color, thickness float64, closed bool) *Polyline {
	n := len(f.Polylines)
	if n < cap(f.Polylines) {
		f.Polylines = f.Polylines[:n+1]
		pl := &f.Polylines[n]
		pl.Points = pl.Points[:0]
		pl.Color, pl.Thickness, pl.Closed = c, thickness, closed
		return pl
	}
	f.Polylines = append(f.Polylines, Polyline{Color: c, Thickness: thickness, Closed: closed})
	return &f.Polylines[n]
}

// Len is the number of drawable primitives in the frame.
func (f *Frame) Len() int {
	n := len(f.Instances) + len(f.Points) + len(f.Segments)
	for _, pl := range f.Polylines {
		n += len(pl.Points)
	}
	return n
}

// Each visits every vertex-like position in the frame after applying the
// group rotation.
func (f *Frame) Each(fn func(p Vec3, c Color)) {
	for _, in := range f.Instances {
		fn(in.Position.Rotate(f.Rotation), in.Color)
	}
	for _, p := range f.Points {
		fn(p.Position.Rotate(f.Rotation), p.Color)
	}
	for _, pl := range f.Polylines {
		for _, p := range pl.Points {
			fn(p.Rotate(f.Rotation), pl.Color)
		}
	}
	for _, s := range f.Segments {
		fn(s.A.Rotate(f.Rotation), s.Color)
		fn(s.B.Rotate(f.Rotation), s.Color)
	}
}
