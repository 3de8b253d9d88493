package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/vizvault/internal/geom"
	"github.com/san-kum/vizvault/internal/params"
	"github.com/san-kum/vizvault/internal/viz"
)

func testFrame() *geom.Frame {
	f := &geom.Frame{Index: 3, Background: geom.Color{R: 1}}
	f.Instances = append(f.Instances, geom.Instance{Shape: geom.ShapeSphere, Position: geom.V(1, 2, 3), Scale: geom.V(0.5, 0.5, 0.5), Color: geom.Color{G: 1}})
	f.Points = append(f.Points, geom.Point{Position: geom.V(0, 0, 0), Color: geom.Color{B: 1}, Size: 0.2})
	pl := f.Polyline(geom.Color{R: 1, G: 1}, 0.1, true)
	pl.Points = append(pl.Points, geom.V(0, 0, 0), geom.V(1, 0, 0), geom.V(0, 1, 0))
	f.Segments = append(f.Segments, geom.Segment{A: geom.V(-1, 0, 0), B: geom.V(1, 0, 0)})
	return f
}

func TestEncodeFrameInstanceWireframe(t *testing.T) {
	f := testFrame()
	f.Instances = append(f.Instances, geom.Instance{Shape: geom.ShapeSphere, Wireframe: true})

	out := EncodeFrame(f)
	if out.Wireframe {
		t.Error("frame-wide wireframe should stay off")
	}
	if out.Instances[0].Wireframe || !out.Instances[1].Wireframe {
		t.Errorf("unexpected instance flags %+v", out.Instances)
	}

	data, err := json.Marshal(out.Instances[0])
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "wireframe") {
		t.Errorf("solid instance should omit the flag: %s", data)
	}
}

func TestEncodeFrame(t *testing.T) {
	out := EncodeFrame(testFrame())

	if out.Index != 3 || out.Background != "#ff0000" {
		t.Errorf("unexpected header %+v", out)
	}
	if len(out.Instances) != 1 || out.Instances[0].Shape != "sphere" || out.Instances[0].Position != [3]float64{1, 2, 3} {
		t.Errorf("unexpected instances %+v", out.Instances)
	}
	if len(out.Polylines) != 1 || len(out.Polylines[0].Points) != 3 || !out.Polylines[0].Closed {
		t.Errorf("unexpected polylines %+v", out.Polylines)
	}

	empty := EncodeFrame(nil)
	data, err := json.Marshal(empty)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"points":[]`) {
		t.Errorf("empty slices should encode as [], got %s", data)
	}
}

func TestExportJSON(t *testing.T) {
	set := params.Set{"count": params.Number(4), "wireframe": params.Bool(true)}
	data := NewExportData("demo", "Demo", 1.5, set, testFrame())

	path := filepath.Join(t.TempDir(), "frame.json")
	if err := ExportJSON(path, data); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var back ExportData
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if back.Scene != "demo" || back.Time != 1.5 {
		t.Errorf("unexpected header %+v", back)
	}
	if back.Params["count"] != 4.0 || back.Params["wireframe"] != true {
		t.Errorf("unexpected params %v", back.Params)
	}
	if back.Stats.Count != 6 {
		t.Errorf("expected 6 primitives, got %d", back.Stats.Count)
	}
}

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 2, "") != "" {
		t.Error("nil canvas should give empty output")
	}
	c := viz.NewCanvas(2, 1)
	c.Pen(geom.Color{G: 1})
	c.Set(0, 0)
	c.Set(3, 3)

	svg := CanvasToSVG(c, 2, "#000000")
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 circles, got %d", n)
	}
	if !strings.Contains(svg, `fill="#00ff00"`) || !strings.Contains(svg, `width="8" height="8"`) {
		t.Errorf("unexpected svg %s", svg)
	}
}

func TestFrameToSVG(t *testing.T) {
	svg := FrameToSVG(testFrame(), nil, 200, 100)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("malformed svg document")
	}
	// 3 closed-polyline edges + 1 segment
	if n := strings.Count(svg, "<line"); n != 4 {
		t.Errorf("expected 4 lines, got %d", n)
	}
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 circles, got %d", n)
	}
	if !strings.Contains(svg, `fill="#ff0000"`) {
		t.Error("expected frame background")
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, 10, 10, "#fff") != "" {
		t.Error("single sample should give empty output")
	}
	svg := SeriesToSVG([]float64{0, 1, 0.5}, 100, 50, "#00ff00")
	if !bytes.Contains([]byte(svg), []byte(" L50.0,")) {
		t.Errorf("expected midpoint vertex, got %s", svg)
	}
}
