package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/vizvault/internal/geom"
	"github.com/san-kum/vizvault/internal/params"
	"github.com/san-kum/vizvault/internal/stats"
)

type Instance struct {
	Shape     string     `json:"shape"`
	Position  [3]float64 `json:"position"`
	Scale     [3]float64 `json:"scale"`
	Color     string     `json:"color"`
	Wireframe bool       `json:"wireframe,omitempty"`
}

type Point struct {
	Position [3]float64 `json:"position"`
	Color    string     `json:"color"`
	Size     float64    `json:"size"`
}

type Polyline struct {
	Points    [][3]float64 `json:"points"`
	Color     string       `json:"color"`
	Thickness float64      `json:"thickness"`
	Closed    bool         `json:"closed"`
}

type Segment struct {
	A     [3]float64 `json:"a"`
	B     [3]float64 `json:"b"`
	Color string     `json:"color"`
}

// Frame is the wire form of a geom.Frame.
type Frame struct {
	Index      uint64     `json:"index"`
	Background string     `json:"background"`
	Rotation   [3]float64 `json:"rotation"`
	Wireframe  bool       `json:"wireframe"`
	Instances  []Instance `json:"instances"`
	Points     []Point    `json:"points"`
	Polylines  []Polyline `json:"polylines"`
	Segments   []Segment  `json:"segments"`
}

func vec(v geom.Vec3) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

// EncodeFrame copies f into its wire form. The result does not alias f.
func EncodeFrame(f *geom.Frame) Frame {
	out := Frame{
		Instances: []Instance{},
		Points:    []Point{},
		Polylines: []Polyline{},
		Segments:  []Segment{},
	}
	if f == nil {
		return out
	}
	out.Index = f.Index
	out.Background = f.Background.Hex()
	out.Rotation = vec(f.Rotation)
	out.Wireframe = f.Wireframe
	for _, in := range f.Instances {
		out.Instances = append(out.Instances, Instance{in.Shape.String(), vec(in.Position), vec(in.Scale), in.Color.Hex(), in.Wireframe})
	}
	for _, p := range f.Points {
		out.Points = append(out.Points, Point{vec(p.Position), p.Color.Hex(), p.Size})
	}
	for _, pl := range f.Polylines {
		pts := make([][3]float64, len(pl.Points))
		for i, p := range pl.Points {
			pts[i] = vec(p)
		}
		out.Polylines = append(out.Polylines, Polyline{pts, pl.Color.Hex(), pl.Thickness, pl.Closed})
	}
	for _, s := range f.Segments {
		out.Segments = append(out.Segments, Segment{vec(s.A), vec(s.B), s.Color.Hex()})
	}
	return out
}

// ExportData is one rendered frame with the scene and parameters that
// produced it.
type ExportData struct {
	Scene  string         `json:"scene"`
	Title  string         `json:"title,omitempty"`
	Time   float64        `json:"time"`
	Params map[string]any `json:"params"`
	Stats  stats.Summary  `json:"stats"`
	Frame  Frame          `json:"frame"`
}

func NewExportData(slug, title string, t float64, set params.Set, f *geom.Frame) ExportData {
	return ExportData{
		Scene:  slug,
		Title:  title,
		Time:   t,
		Params: set.Map(),
		Stats:  stats.Summarize(f),
		Frame:  EncodeFrame(f),
	}
}

// WriteJSON writes data as indented JSON.
func WriteJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, data)
}

func ExportJSONStdout(data ExportData) error {
	return WriteJSON(os.Stdout, data)
}
