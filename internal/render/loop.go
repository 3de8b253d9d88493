// Package render drives generators once per display tick.
package render

import (
	"context"
	"errors"
	"time"

	"github.com/san-kum/vizvault/internal/gen"
	"github.com/san-kum/vizvault/internal/geom"
	"github.com/san-kum/vizvault/internal/params"
)

const DefaultFPS = 60

// ErrStop may be returned by a sink to end Run without error.
var ErrStop = errors.New("render: stop")

// Loop invokes one generator against one parameter store.
type Loop struct {
	gen   gen.Generator
	kind  gen.Kind
	store *params.Store
	pool  *FramePool

	frame   uint64
	rev     uint64
	last    *geom.Frame
	cost    time.Duration
	stopped bool
}

func NewLoop(g gen.Generator, kind gen.Kind, store *params.Store) *Loop {
	return &Loop{gen: g, kind: kind, store: store, pool: NewFramePool()}
}

// Tick generates the next frame synchronously. Static kinds reuse the
// previous frame until the store changes.
func (l *Loop) Tick(elapsed, delta float64) *geom.Frame {
	if l.stopped {
		return nil
	}
	if l.kind.Static() && l.last != nil && l.store.Revision() == l.rev {
		l.cost = 0
		return l.last
	}
	start := time.Now()
	f := l.pool.Acquire(l.frame)
	l.gen.Generate(l.store.Current(), gen.Clock{Elapsed: elapsed, Delta: delta, Frame: l.frame}, f)
	l.cost = time.Since(start)
	l.frame++
	l.rev = l.store.Revision()
	l.last = f
	return f
}

// Last is the most recent frame, or nil before the first tick.
func (l *Loop) Last() *geom.Frame { return l.last }

// Cost is how long the last generation took.
func (l *Loop) Cost() time.Duration { return l.cost }

func (l *Loop) Frames() uint64 { return l.frame }

func (l *Loop) Kind() gen.Kind { return l.kind }

// Stop ends the loop and releases its buffers. Later ticks return nil.
func (l *Loop) Stop() {
	l.stopped = true
	l.last = nil
	l.pool.Release()
}

// Run ticks at fps until ctx is cancelled or sink fails. A slow tick is
// followed by the next ticker fire; missed ticks are dropped.
func (l *Loop) Run(ctx context.Context, fps int, sink func(*geom.Frame) error) error {
	if fps <= 0 {
		fps = DefaultFPS
	}
	defer l.Stop()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	start := time.Now()
	prev := start
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			f := l.Tick(now.Sub(start).Seconds(), now.Sub(prev).Seconds())
			prev = now
			if err := sink(f); err != nil {
				if errors.Is(err, ErrStop) {
					return nil
				}
				return err
			}
		}
	}
}
