// Package stats reduces generated frames to scalar statistics used by the
// plot command, capture metadata and the terminal stats panel.
package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/vizvault/internal/geom"
)

// Metric accumulates one scalar over a sequence of frames.
type Metric interface {
	Name() string
	Observe(f *geom.Frame, t float64)
	Value() float64
	Reset()
}

// Summary describes the extent of a single frame after the group rotation.
type Summary struct {
	Count    int       `json:"count"`
	Radius   float64   `json:"radius"`
	MinY     float64   `json:"min_y"`
	MaxY     float64   `json:"max_y"`
	MeanY    float64   `json:"mean_y"`
	Centroid geom.Vec3 `json:"centroid"`
}

func Summarize(f *geom.Frame) Summary {
	var s Summary
	if f == nil {
		return s
	}
	s.MinY, s.MaxY = math.Inf(1), math.Inf(-1)
	var sum geom.Vec3
	n := 0
	f.Each(func(p geom.Vec3, _ geom.Color) {
		n++
		sum = sum.Add(p)
		if r := p.Length(); r > s.Radius {
			s.Radius = r
		}
		s.MinY = math.Min(s.MinY, p.Y)
		s.MaxY = math.Max(s.MaxY, p.Y)
	})
	s.Count = f.Len()
	if n == 0 {
		s.MinY, s.MaxY = 0, 0
		return s
	}
	s.Centroid = sum.Scale(1 / float64(n))
	s.MeanY = s.Centroid.Y
	return s
}

// Bounds returns the axis-aligned box around every rotated vertex.
func Bounds(f *geom.Frame) (lo, hi geom.Vec3, ok bool) {
	if f == nil {
		return
	}
	f.Each(func(p geom.Vec3, _ geom.Color) {
		if !ok {
			lo, hi, ok = p, p, true
			return
		}
		lo = geom.Vec3{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y), Z: math.Min(lo.Z, p.Z)}
		hi = geom.Vec3{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y), Z: math.Max(hi.Z, p.Z)}
	})
	return
}

type Count struct {
	samples int
	total   float64
}

func NewCount() *Count { return &Count{} }

func (c *Count) Name() string { return "count" }

func (c *Count) Observe(f *geom.Frame, t float64) {
	if f == nil {
		return
	}
	c.total += float64(f.Len())
	c.samples++
}

func (c *Count) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.total / float64(c.samples)
}

func (c *Count) Reset() { *c = Count{} }

// Extent tracks the largest bounding radius seen.
type Extent struct {
	max float64
}

func NewExtent() *Extent { return &Extent{} }

func (e *Extent) Name() string { return "extent" }

func (e *Extent) Observe(f *geom.Frame, t float64) {
	e.max = math.Max(e.max, Summarize(f).Radius)
}

func (e *Extent) Value() float64 { return e.max }

func (e *Extent) Reset() { e.max = 0 }

type Height struct {
	samples int
	total   float64
}

func NewHeight() *Height { return &Height{} }

func (h *Height) Name() string { return "height" }

func (h *Height) Observe(f *geom.Frame, t float64) {
	if f == nil || f.Len() == 0 {
		return
	}
	h.total += Summarize(f).MeanY
	h.samples++
}

func (h *Height) Value() float64 {
	if h.samples == 0 {
		return 0
	}
	return h.total / float64(h.samples)
}

func (h *Height) Reset() { *h = Height{} }

var constructors = map[string]func() Metric{
	"count":  func() Metric { return NewCount() },
	"extent": func() Metric { return NewExtent() },
	"height": func() Metric { return NewHeight() },
}

func New(name string) (Metric, error) {
	c, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown statistic: %s", name)
	}
	return c(), nil
}

func Names() []string {
	out := make([]string, 0, len(constructors))
	for n := range constructors {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// All returns one fresh instance of every metric, ordered by name.
func All() []Metric {
	names := Names()
	out := make([]Metric, len(names))
	for i, n := range names {
		out[i], _ = New(n)
	}
	return out
}

// Sample extracts the per-frame value a metric name refers to.
func Sample(name string, f *geom.Frame) (float64, error) {
	return Summarize(f).Stat(name)
}

// Stat reads the summary field a metric name refers to.
func (s Summary) Stat(name string) (float64, error) {
	switch name {
	case "count":
		return float64(s.Count), nil
	case "extent":
		return s.Radius, nil
	case "height":
		return s.MeanY, nil
	}
	return 0, fmt.Errorf("unknown statistic: %s", name)
}

// Collect returns the current value of every metric keyed by name.
func Collect(metrics []Metric) map[string]float64 {
	out := make(map[string]float64, len(metrics))
	for _, m := range metrics {
		out[m.Name()] = m.Value()
	}
	return out
}
