package storage

import (
	"context"

	"github.com/san-kum/vizvault/internal/export"
	"github.com/san-kum/vizvault/internal/render"
	"github.com/san-kum/vizvault/internal/stats"
	"github.com/san-kum/vizvault/internal/surface"
)

// Result is a recorded run of frames.
type Result struct {
	Times   []float64
	Indices []uint64
	Samples []stats.Summary
	Metrics map[string]float64
	Last    *export.ExportData
}

// Record steps s for the given number of frames at a fixed timestep of
// 1/fps, observing every frame with the built-in metrics. It stops early
// when ctx is cancelled and returns what was recorded so far.
func Record(ctx context.Context, s *surface.Session, frames, fps int) (*Result, error) {
	if fps <= 0 {
		fps = render.DefaultFPS
	}
	dt := 1 / float64(fps)
	metrics := stats.All()
	res := &Result{
		Times:   make([]float64, 0, frames),
		Indices: make([]uint64, 0, frames),
		Samples: make([]stats.Summary, 0, frames),
	}

	elapsed := 0.0
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			res.Metrics = stats.Collect(metrics)
			return res, ctx.Err()
		default:
		}
		f := s.Frame(elapsed, dt)
		if f == nil {
			break
		}
		for _, m := range metrics {
			m.Observe(f, elapsed)
		}
		res.Times = append(res.Times, elapsed)
		res.Indices = append(res.Indices, f.Index)
		res.Samples = append(res.Samples, stats.Summarize(f))
		if i == frames-1 {
			d := s.Descriptor()
			last := export.NewExportData(d.Slug, d.Title, elapsed, s.Params(), f)
			res.Last = &last
		}
		elapsed += dt
	}
	res.Metrics = stats.Collect(metrics)
	return res, nil
}
