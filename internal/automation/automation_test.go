package automation

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/vizvault/internal/config"
	"github.com/san-kum/vizvault/internal/gen"
	"github.com/san-kum/vizvault/internal/params"
	"github.com/san-kum/vizvault/internal/scene"
	"github.com/san-kum/vizvault/internal/storage"
)

const sampleScenario = `
name: tour
fps: 20
steps:
  - scene: orbiting-spheres
    params:
      sphereCount: 5
      wireframe: true
    duration: 0.5
    save_as: few-spheres
  - scene: /viz/perlin-noise-map
    preset: hills
    params:
      speed: 0
    duration: 0.25
`

func testOptions(t *testing.T) (Options, *storage.Store) {
	t.Helper()
	st := storage.New(t.TempDir())
	return Options{
		Registry: scene.Builtin(),
		Loader:   gen.NewLoader(gen.Options{}),
		Store:    st,
		FPS:      60,
	}, st
}

func TestDecodeScenario(t *testing.T) {
	sc, err := DecodeScenario(strings.NewReader(sampleScenario))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "tour" || sc.FPS != 20 || len(sc.Steps) != 2 {
		t.Fatalf("unexpected scenario %+v", sc)
	}
	got := sc.Steps[0].Params.Strings()
	if got["sphereCount"] != "5" || got["wireframe"] != "true" {
		t.Errorf("unexpected params %v", got)
	}
	if n := sc.Steps[0].Frames(sc.FPS); n != 10 {
		t.Errorf("expected 10 frames, got %d", n)
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := DecodeScenario(strings.NewReader(sampleScenario))
	if err != nil {
		t.Fatal(err)
	}
	opts, st := testOptions(t)
	var log bytes.Buffer
	opts.Out = &log

	results, err := RunScenario(context.Background(), sc, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	first := results[0]
	if first.ID != "few-spheres" || first.Frames != 10 || first.Step != 1 {
		t.Errorf("unexpected first result %+v", first)
	}
	meta, err := st.Load("few-spheres")
	if err != nil {
		t.Fatal(err)
	}
	if meta.Scene != "orbiting-spheres" || meta.FPS != 20 || meta.Frames != 10 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Params["sphereCount"] != 5.0 || meta.Params["wireframe"] != true {
		t.Errorf("overrides not recorded: %v", meta.Params)
	}
	samples, _, err := st.LoadSamples("few-spheres")
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 10 || samples[0].Count != 6 {
		t.Errorf("expected 10 samples of 6 instances, got %d", len(samples))
	}

	second := results[1]
	if second.Scene != "perlin-noise-map" || second.Frames != 5 {
		t.Errorf("unexpected second result %+v", second)
	}
	if !strings.HasPrefix(second.ID, "perlin-noise-map_") {
		t.Errorf("expected a generated id, got %q", second.ID)
	}
	meta, err = st.Load(second.ID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Params["scale"] != 0.1 || meta.Params["amplitude"] != 2.5 || meta.Params["speed"] != 0.0 {
		t.Errorf("preset then params not applied: %v", meta.Params)
	}

	if !strings.Contains(log.String(), "step 2/2: /viz/perlin-noise-map") {
		t.Errorf("unexpected progress output %q", log.String())
	}
}

func TestRunScenarioErrors(t *testing.T) {
	step := func(mut func(*ScenarioStep)) *Scenario {
		st := ScenarioStep{Scene: "orbiting-spheres", Duration: 0.1}
		mut(&st)
		return &Scenario{Name: "bad", Steps: []ScenarioStep{st}}
	}
	tests := []struct {
		name string
		sc   *Scenario
		want error
	}{
		{"no steps", &Scenario{Name: "empty"}, ErrNoSteps},
		{"missing scene", step(func(s *ScenarioStep) { s.Scene = " " }), ErrBadStep},
		{"zero duration", step(func(s *ScenarioStep) { s.Duration = 0 }), ErrBadStep},
		{"path in save_as", step(func(s *ScenarioStep) { s.SaveAs = "../escape" }), ErrBadStep},
		{"unknown scene", step(func(s *ScenarioStep) { s.Scene = "nope" }), scene.ErrNotFound},
		{"unknown param", step(func(s *ScenarioStep) { s.Params = config.Preset{"bogus": 1} }), params.ErrUnknownParam},
		{"unknown preset", step(func(s *ScenarioStep) { s.Preset = "nope" }), config.ErrUnknownPreset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, _ := testOptions(t)
			results, err := RunScenario(context.Background(), tt.sc, opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if len(results) != 0 {
				t.Errorf("expected no results, got %d", len(results))
			}
		})
	}
}

func TestDuplicateSaveAs(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{
		{Scene: "orbiting-spheres", Duration: 0.1, SaveAs: "run"},
		{Scene: "noise-tunnel", Duration: 0.1, SaveAs: "run"},
	}}
	if err := sc.Validate(); !errors.Is(err, ErrBadStep) {
		t.Errorf("expected ErrBadStep, got %v", err)
	}
}

func TestFailedStepKeepsEarlierCaptures(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{
		{Scene: "orbiting-spheres", Duration: 0.1, SaveAs: "kept"},
		{Scene: "nope", Duration: 0.1},
	}}
	opts, st := testOptions(t)
	results, err := RunScenario(context.Background(), sc, opts)
	if !errors.Is(err, scene.ErrNotFound) || !strings.Contains(err.Error(), "step 2") {
		t.Fatalf("expected step 2 not found, got %v", err)
	}
	if len(results) != 1 || results[0].ID != "kept" {
		t.Fatalf("expected the first capture, got %+v", results)
	}
	if _, err := st.Load("kept"); err != nil {
		t.Errorf("first capture missing: %v", err)
	}
}

func TestCancelledScenario(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts, _ := testOptions(t)
	sc := &Scenario{Steps: []ScenarioStep{{Scene: "orbiting-spheres", Duration: 1}}}
	if _, err := RunScenario(ctx, sc, opts); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
