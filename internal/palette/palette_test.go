package palette

import (
	"math"
	"testing"

	"github.com/san-kum/vizvault/internal/geom"
)

func TestGetUnknownFallsBack(t *testing.T) {
	if got := Get("nope").Name; got != "infrared" {
		t.Errorf("Get(nope) = %s, want infrared", got)
	}
	if got := Get("sunken").Name; got != "sunken" {
		t.Errorf("Get(sunken) = %s", got)
	}
}

func TestAtEndpoints(t *testing.T) {
	p := Get("aurora")
	first := MustParse(p.Stops[0])
	last := MustParse(p.Stops[len(p.Stops)-1])

	tests := []struct {
		t    float64
		want geom.Color
	}{
		{-1, first},
		{0, first},
		{1, last},
		{2, last},
	}
	for _, tt := range tests {
		got := p.At(tt.t)
		if !near(got, tt.want) {
			t.Errorf("At(%v) = %+v, want %+v", tt.t, got, tt.want)
		}
	}
}

func TestAtMidpointBlends(t *testing.T) {
	p := Palette{Stops: []string{"#000000", "#ffffff"}}
	got := p.At(0.5)
	if math.Abs(got.R-0.5) > 1e-9 || math.Abs(got.G-0.5) > 1e-9 {
		t.Errorf("At(0.5) = %+v", got)
	}
}

func TestParse(t *testing.T) {
	c, err := Parse("#fff")
	if err != nil {
		t.Fatalf("Parse(#fff): %v", err)
	}
	if !near(c, geom.White) {
		t.Errorf("Parse(#fff) = %+v", c)
	}
	if _, err := Parse("blue"); err == nil {
		t.Error("expected error for non-hex colour")
	}
}

func TestShade(t *testing.T) {
	base := geom.Color{R: 0.5, G: 0.5, B: 0.5}
	if got := Shade(base, 1); !near(got, geom.White) {
		t.Errorf("Shade(+1) = %+v", got)
	}
	if got := Shade(base, -1); !near(got, geom.Black) {
		t.Errorf("Shade(-1) = %+v", got)
	}
}

func near(a, b geom.Color) bool {
	return math.Abs(a.R-b.R) < 1e-6 && math.Abs(a.G-b.G) < 1e-6 && math.Abs(a.B-b.B) < 1e-6
}
