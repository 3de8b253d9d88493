package stats

import (
	"math"
	"testing"

	"github.com/san-kum/vizvault/internal/geom"
)

func sampleFrame() *geom.Frame {
	f := &geom.Frame{}
	f.Points = append(f.Points,
		geom.Point{Position: geom.V(3, 0, 4)},
		geom.Point{Position: geom.V(0, 2, 0)},
		geom.Point{Position: geom.V(0, -2, 0)},
	)
	f.Segments = append(f.Segments, geom.Segment{A: geom.V(1, 1, 0), B: geom.V(-1, 1, 0)})
	return f
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleFrame())

	if s.Count != 4 {
		t.Errorf("expected 4 primitives, got %d", s.Count)
	}
	if math.Abs(s.Radius-5) > 1e-9 {
		t.Errorf("expected radius 5, got %f", s.Radius)
	}
	if s.MinY != -2 || s.MaxY != 2 {
		t.Errorf("expected y range [-2, 2], got [%f, %f]", s.MinY, s.MaxY)
	}
	// five vertices: 0 + 2 - 2 + 1 + 1
	if math.Abs(s.MeanY-0.4) > 1e-9 {
		t.Errorf("expected mean height 0.4, got %f", s.MeanY)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(&geom.Frame{})
	if s != (Summary{}) {
		t.Errorf("expected zero summary, got %+v", s)
	}
	if s := Summarize(nil); s.Count != 0 {
		t.Error("expected zero count for nil frame")
	}
}

func TestBoundsFollowRotation(t *testing.T) {
	f := &geom.Frame{Rotation: geom.V(0, 0, math.Pi/2)}
	f.Points = append(f.Points, geom.Point{Position: geom.V(1, 0, 0)})

	lo, hi, ok := Bounds(f)
	if !ok {
		t.Fatal("expected bounds")
	}
	if math.Abs(lo.Y-1) > 1e-9 || math.Abs(hi.Y-1) > 1e-9 || math.Abs(hi.X) > 1e-9 {
		t.Errorf("expected point rotated onto +Y, got %v..%v", lo, hi)
	}

	if _, _, ok := Bounds(&geom.Frame{}); ok {
		t.Error("expected no bounds for empty frame")
	}
}

func TestMetricsAccumulateAndReset(t *testing.T) {
	f := sampleFrame()
	small := &geom.Frame{}
	small.Points = append(small.Points, geom.Point{Position: geom.V(0, 1, 0)})

	for name, v := range Collect(All()) {
		if v != 0 {
			t.Errorf("fresh %s should be zero, got %f", name, v)
		}
	}

	c := NewCount()
	c.Observe(f, 0)
	c.Observe(small, 0.1)
	if c.Value() != 2.5 {
		t.Errorf("expected mean count 2.5, got %f", c.Value())
	}
	c.Reset()
	if c.Value() != 0 {
		t.Error("expected zero after reset")
	}

	e := NewExtent()
	e.Observe(small, 0)
	e.Observe(f, 0.1)
	if math.Abs(e.Value()-5) > 1e-9 {
		t.Errorf("expected extent 5, got %f", e.Value())
	}

	h := NewHeight()
	h.Observe(small, 0)
	h.Observe(&geom.Frame{}, 0.1)
	if h.Value() != 1 {
		t.Errorf("empty frames should not count toward height, got %f", h.Value())
	}
}

func TestLookup(t *testing.T) {
	if _, err := New("bogus"); err == nil {
		t.Error("expected error for unknown statistic")
	}
	if _, err := Sample("bogus", sampleFrame()); err == nil {
		t.Error("expected error for unknown sample")
	}
	names := Names()
	if len(names) != 3 || names[0] != "count" {
		t.Errorf("unexpected names %v", names)
	}
	v, err := Sample("extent", sampleFrame())
	if err != nil || math.Abs(v-5) > 1e-9 {
		t.Errorf("expected extent sample 5, got %f (%v)", v, err)
	}
}

func TestSummaryStat(t *testing.T) {
	s := Summary{Count: 4, Radius: 5, MeanY: 0.4}
	tests := []struct {
		name string
		want float64
	}{
		{"count", 4},
		{"extent", 5},
		{"height", 0.4},
	}
	for _, tt := range tests {
		got, err := s.Stat(tt.name)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
	if _, err := s.Stat("energy"); err == nil {
		t.Error("expected error for unknown statistic")
	}
}
