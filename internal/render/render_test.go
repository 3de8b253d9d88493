package render

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/san-kum/vizvault/internal/gen"
	"github.com/san-kum/vizvault/internal/geom"
	"github.com/san-kum/vizvault/internal/params"
	"github.com/san-kum/vizvault/internal/scene"
)

func newLoop(t *testing.T, k gen.Kind) (*Loop, *params.Store) {
	t.Helper()
	d, err := scene.Builtin().Lookup(k.String())
	if err != nil {
		t.Fatal(err)
	}
	store := params.NewStore()
	store.Reset(params.Defaults(d.Params))
	return NewLoop(k.New(), k, store), store
}

func TestFramePoolAlternates(t *testing.T) {
	p := NewFramePool()
	a := p.Acquire(0)
	b := p.Acquire(1)
	c := p.Acquire(2)

	if a == b {
		t.Error("consecutive frames share a buffer")
	}
	if a != c {
		t.Error("frame 2 should reuse slot 0")
	}
	if c.Index != 2 {
		t.Errorf("expected index 2, got %d", c.Index)
	}
}

func TestFramePoolResetsSlot(t *testing.T) {
	p := NewFramePool()
	f := p.Acquire(0)
	f.Points = append(f.Points, geom.Point{}, geom.Point{})
	f = p.Acquire(2)
	if len(f.Points) != 0 {
		t.Errorf("expected empty slot, got %d points", len(f.Points))
	}
}

func TestTickKeepsPreviousFrameIntact(t *testing.T) {
	loop, _ := newLoop(t, gen.NoiseTunnel)
	first := loop.Tick(0, 0)
	firstPoint := first.Points[0]
	second := loop.Tick(1, 1)

	if first == second {
		t.Fatal("consecutive ticks returned the same buffer")
	}
	if first.Points[0] != firstPoint {
		t.Error("generating frame n+1 modified frame n")
	}
	if loop.Frames() != 2 {
		t.Errorf("expected 2 frames, got %d", loop.Frames())
	}
}

func TestStaticKindRegeneratesOnChange(t *testing.T) {
	loop, store := newLoop(t, gen.TerrainHeightmap)
	a := loop.Tick(0, 0)
	b := loop.Tick(1, 1)
	if a != b {
		t.Error("static frame regenerated without a parameter change")
	}

	store.Set("amplitude", params.Number(4))
	c := loop.Tick(2, 1)
	if c == a {
		t.Error("static frame not regenerated after a parameter change")
	}
	if loop.Frames() != 2 {
		t.Errorf("expected 2 generated frames, got %d", loop.Frames())
	}
}

func TestStopReleases(t *testing.T) {
	loop, _ := newLoop(t, gen.OrbitingSpheres)
	loop.Tick(0, 0)
	loop.Stop()
	if loop.Last() != nil {
		t.Error("last frame retained after stop")
	}
	if f := loop.Tick(1, 1); f != nil {
		t.Error("tick after stop produced a frame")
	}
}

func TestRunStopsOnSinkError(t *testing.T) {
	loop, _ := newLoop(t, gen.OrbitingSpheres)
	var n int
	err := loop.Run(context.Background(), 200, func(f *geom.Frame) error {
		n++
		if n == 3 {
			return ErrStop
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected nil on ErrStop, got %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 frames, got %d", n)
	}

	loop, _ = newLoop(t, gen.OrbitingSpheres)
	boom := errors.New("boom")
	err = loop.Run(context.Background(), 200, func(*geom.Frame) error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("expected sink error, got %v", err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	loop, _ := newLoop(t, gen.PerlinNoiseMap)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := loop.Run(ctx, 120, func(*geom.Frame) error { return nil })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if loop.Last() != nil {
		t.Error("buffers not released after cancel")
	}
}

func TestBench(t *testing.T) {
	var cases []BenchCase
	for _, k := range []gen.Kind{gen.FractalCubes, gen.ParticleFountain} {
		d, _ := scene.Builtin().Lookup(k.String())
		cases = append(cases, BenchCase{Kind: k, Params: params.Defaults(d.Params)})
	}
	res, err := Bench(context.Background(), cases, 10, 1.0/60)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 2 {
		t.Fatalf("expected 2 results, got %d", len(res))
	}
	for _, r := range res {
		if r.Ticks != 10 || r.Points == 0 {
			t.Errorf("%s: ticks=%d points=%d", r.Kind, r.Ticks, r.Points)
		}
	}
}
