package render

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/vizvault/internal/gen"
	"github.com/san-kum/vizvault/internal/params"
)

// BenchResult summarises generator cost over a fixed number of ticks.
type BenchResult struct {
	Kind   gen.Kind
	Ticks  int
	Total  time.Duration
	Worst  time.Duration
	Points int
}

func (r BenchResult) Mean() time.Duration {
	if r.Ticks == 0 {
		return 0
	}
	return r.Total / time.Duration(r.Ticks)
}

// BenchCase is one generator with its own parameter set.
type BenchCase struct {
	Kind   gen.Kind
	Params params.Set
	Opts   gen.Options
}

// Bench ticks each case on its own goroutine with a simulated clock at dt.
func Bench(ctx context.Context, cases []BenchCase, ticks int, dt float64) ([]BenchResult, error) {
	results := make([]BenchResult, len(cases))
	g, ctx := errgroup.WithContext(ctx)
	for i, c := range cases {
		g.Go(func() error {
			store := params.NewStore()
			store.Reset(c.Params)
			loop := NewLoop(c.Kind.NewWith(c.Opts), c.Kind, store)
			defer loop.Stop()

			res := BenchResult{Kind: c.Kind}
			for t := 0; t < ticks; t++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				f := loop.Tick(float64(t)*dt, dt)
				cost := loop.Cost()
				res.Total += cost
				res.Worst = max(res.Worst, cost)
				res.Points = f.Len()
				res.Ticks++
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
