// Package automation runs scripted capture sequences: a yaml scenario lists
// scenes with parameter overrides and a duration, and each step is recorded
// into the capture store.
package automation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/vizvault/internal/config"
	"github.com/san-kum/vizvault/internal/gen"
	"github.com/san-kum/vizvault/internal/render"
	"github.com/san-kum/vizvault/internal/scene"
	"github.com/san-kum/vizvault/internal/storage"
	"github.com/san-kum/vizvault/internal/surface"
)

var (
	ErrNoSteps = errors.New("automation: scenario has no steps")
	ErrBadStep = errors.New("automation: invalid step")
)

// Scenario is a scripted capture sequence.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`

	// FPS overrides the configured frame rate for every step.
	FPS   int            `yaml:"fps,omitempty"`
	Steps []ScenarioStep `yaml:"steps"`
}

// ScenarioStep records one scene. Preset values are applied first, then
// Params on top of them.
type ScenarioStep struct {
	Scene    string        `yaml:"scene"`
	Preset   string        `yaml:"preset,omitempty"`
	Params   config.Preset `yaml:"params,omitempty"`
	Duration float64       `yaml:"duration"`
	SaveAs   string        `yaml:"save_as,omitempty"`
}

// StepResult describes one saved capture.
type StepResult struct {
	Step    int
	Scene   string
	ID      string
	Frames  int
	Metrics map[string]float64
}

// Options carries what a scenario run needs from the caller.
type Options struct {
	Registry *scene.Registry
	Loader   *gen.Loader
	Store    *storage.Store

	// Config resolves presets; nil uses the built-in ones.
	Config *config.Config
	FPS    int

	// Out receives one progress line per step.
	Out io.Writer
}

func LoadScenario(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sc, err := DecodeScenario(f)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

func DecodeScenario(r io.Reader) (*Scenario, error) {
	var sc Scenario
	if err := yaml.NewDecoder(r).Decode(&sc); err != nil {
		if err == io.EOF {
			return nil, ErrNoSteps
		}
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks the shape of every step. Scene names and parameter values
// are checked when the step runs.
func (sc *Scenario) Validate() error {
	if len(sc.Steps) == 0 {
		return ErrNoSteps
	}
	ids := make(map[string]int)
	for i, st := range sc.Steps {
		n := i + 1
		if strings.TrimSpace(st.Scene) == "" {
			return fmt.Errorf("%w %d: missing scene", ErrBadStep, n)
		}
		if st.Duration <= 0 || math.IsNaN(st.Duration) || math.IsInf(st.Duration, 0) {
			return fmt.Errorf("%w %d: duration must be positive, got %v", ErrBadStep, n, st.Duration)
		}
		if st.SaveAs == "" {
			continue
		}
		if st.SaveAs == "." || st.SaveAs == ".." || filepath.Base(st.SaveAs) != st.SaveAs || strings.ContainsAny(st.SaveAs, `/\`) {
			return fmt.Errorf("%w %d: save_as %q is not a plain name", ErrBadStep, n, st.SaveAs)
		}
		if prev, ok := ids[st.SaveAs]; ok {
			return fmt.Errorf("%w %d: save_as %q already used by step %d", ErrBadStep, n, st.SaveAs, prev)
		}
		ids[st.SaveAs] = n
	}
	return nil
}

// Frames is the number of frames a step records at fps.
func (st ScenarioStep) Frames(fps int) int {
	return max(1, int(math.Round(st.Duration*float64(fps))))
}

// RunScenario records every step in order and saves each capture. It stops
// at the first failing step and returns the captures saved before it.
func RunScenario(ctx context.Context, sc *Scenario, opts Options) ([]StepResult, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	fps := opts.FPS
	if sc.FPS > 0 {
		fps = sc.FPS
	}
	if fps <= 0 {
		fps = render.DefaultFPS
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	if err := opts.Store.Init(); err != nil {
		return nil, err
	}

	results := make([]StepResult, 0, len(sc.Steps))
	for i, st := range sc.Steps {
		fmt.Fprintf(out, "step %d/%d: %s (%d frames)\n", i+1, len(sc.Steps), st.Scene, st.Frames(fps))
		res, err := runStep(ctx, st, cfg, fps, opts)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		res.Step = i + 1
		results = append(results, *res)
	}
	return results, nil
}

func runStep(ctx context.Context, st ScenarioStep, cfg *config.Config, fps int, opts Options) (*StepResult, error) {
	s, err := surface.Open(opts.Registry, opts.Loader, st.Scene)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	d := s.Descriptor()

	values := make(map[string]string)
	if st.Preset != "" {
		p, err := cfg.Preset(d.Slug, st.Preset)
		if err != nil {
			return nil, err
		}
		for k, v := range p.Strings() {
			values[k] = v
		}
	}
	for k, v := range st.Params.Strings() {
		values[k] = v
	}
	if err := s.Apply(values); err != nil {
		return nil, err
	}

	result, err := storage.Record(ctx, s, st.Frames(fps), fps)
	if err != nil {
		return nil, err
	}

	lo := opts.Loader.Options()
	id, err := opts.Store.Save(storage.CaptureMetadata{
		ID:         st.SaveAs,
		Scene:      d.Slug,
		Title:      d.Title,
		SeedPolicy: string(lo.SeedPolicy),
		Seed:       lo.Seed,
		FPS:        fps,
		Duration:   float64(len(result.Times)) / float64(fps),
		Params:     s.Params().Map(),
	}, result)
	if err != nil {
		return nil, err
	}
	return &StepResult{
		Scene:   d.Slug,
		ID:      id,
		Frames:  len(result.Times),
		Metrics: result.Metrics,
	}, nil
}
