package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/vizvault/internal/admin"
	"github.com/san-kum/vizvault/internal/automation"
	"github.com/san-kum/vizvault/internal/config"
	"github.com/san-kum/vizvault/internal/export"
	"github.com/san-kum/vizvault/internal/params"
	"github.com/san-kum/vizvault/internal/render"
	"github.com/san-kum/vizvault/internal/scene"
	"github.com/san-kum/vizvault/internal/stats"
	"github.com/san-kum/vizvault/internal/storage"
	"github.com/san-kum/vizvault/internal/surface"
	"github.com/san-kum/vizvault/internal/viz"
	"github.com/san-kum/vizvault/internal/web"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

func listScenes(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tTITLE\tGENERATOR\tPARAMS")
	for _, d := range e.reg.All() {
		names := make([]string, len(d.Params))
		for i, p := range d.Params {
			names[i] = p.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Slug, d.Title, d.Generator, strings.Join(names, ","))
	}
	return w.Flush()
}

// openSession opens slug with every override applied. A scene that cannot
// be shown yields a nil session and its placeholder view.
func (e *env) openSession(slug string) (*surface.Session, surface.View, error) {
	s, err := surface.Open(e.reg, e.loader, slug)
	if err != nil {
		return nil, surface.Fallback(err), nil
	}
	ov, err := e.overrides(slug)
	if err != nil {
		s.Close()
		return nil, surface.View{}, err
	}
	if err := s.Apply(ov); err != nil {
		s.Close()
		return nil, surface.View{}, err
	}
	return s, surface.View{Kind: surface.ViewOK}, nil
}

func showScene(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	s, view, err := e.openSession(args[0])
	if err != nil {
		return err
	}
	if !view.OK() {
		fmt.Println(view.Text)
		return nil
	}
	defer s.Close()
	return viz.RunDetail(s, viz.DetailOptions{FPS: e.cfg.FPS, GIFDir: e.cfg.DataDir})
}

func serve(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()
	srv := web.NewServer(e.reg, e.loader, web.Options{FPS: e.cfg.FPS})
	return srv.Run(ctx, e.cfg.Web.Addr)
}

// output returns stdout or the --out file.
func output() (io.Writer, func() error, error) {
	if outFile == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// terminalSize is the canvas size in cells, leaving a line for the prompt.
func terminalSize() (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || !term.IsTerminal(int(os.Stdout.Fd())) {
		return 80, 24
	}
	return w, h - 1
}

func renderScene(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	s, view, err := e.openSession(args[0])
	if err != nil {
		return err
	}
	if !view.OK() {
		fmt.Println(view.Text)
		return nil
	}
	defer s.Close()

	f := s.Frame(atTime, atTime)
	out, closeOut, err := output()
	if err != nil {
		return err
	}

	switch format {
	case "braille":
		w, h := terminalSize()
		if width > 0 {
			w = width
		}
		if height > 0 {
			h = height
		}
		canvas := viz.NewCanvas(w, h)
		cam := viz.NewCamera()
		cam.Fit(stats.Summarize(f).Radius)
		viz.DrawFrame(canvas, f, cam)
		if outFile == "" {
			_, err = fmt.Fprintln(out, canvas.Render())
		} else {
			_, err = fmt.Fprintln(out, canvas.String())
		}
	case "json":
		d := s.Descriptor()
		err = export.WriteJSON(out, export.NewExportData(d.Slug, d.Title, atTime, s.Params(), f))
	case "svg":
		w, h := width, height
		if w <= 0 {
			w = 640
		}
		if h <= 0 {
			h = 480
		}
		_, err = io.WriteString(out, export.FrameToSVG(f, nil, w, h))
	default:
		err = fmt.Errorf("unknown format: %s", format)
	}
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	return err
}

func captureScene(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	s, view, err := e.openSession(args[0])
	if err != nil {
		return err
	}
	if !view.OK() {
		return fmt.Errorf("%s: %w", view.Text, view.Err)
	}
	defer s.Close()

	st := storage.New(e.cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	d := s.Descriptor()
	fmt.Printf("capturing %s (%d frames)...\n", d.Slug, frames)
	start := time.Now()
	result, err := storage.Record(ctx, s, frames, e.cfg.FPS)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	elapsed := time.Since(start)

	opts := e.loader.Options()
	id, err := st.Save(storage.CaptureMetadata{
		Scene:      d.Slug,
		Title:      d.Title,
		SeedPolicy: string(opts.SeedPolicy),
		Seed:       opts.Seed,
		FPS:        e.cfg.FPS,
		Duration:   float64(len(result.Times)) / float64(e.cfg.FPS),
		Params:     s.Params().Map(),
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("capture id: %s\n", id)
	fmt.Printf("frames: %d\n", len(result.Times))
	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	name := sc.Name
	if name == "" {
		name = args[0]
	}
	fmt.Printf("running scenario %s (%d steps)...\n", name, len(sc.Steps))
	start := time.Now()
	results, err := automation.RunScenario(ctx, sc, automation.Options{
		Registry: e.reg,
		Loader:   e.loader,
		Store:    storage.New(e.cfg.DataDir),
		Config:   e.cfg,
		FPS:      e.cfg.FPS,
		Out:      os.Stdout,
	})
	if len(results) > 0 {
		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "STEP\tSCENE\tCAPTURE\tFRAMES\tEXTENT")
		for _, r := range results {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.4f\n", r.Step, r.Scene, r.ID, r.Frames, r.Metrics["extent"])
		}
		w.Flush()
	}
	if err != nil {
		return err
	}
	fmt.Printf("\ncompleted in %v\n", time.Since(start))
	return nil
}

func listCaptures(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	captures, err := storage.New(e.cfg.DataDir).List()
	if err != nil {
		return err
	}
	if len(captures) == 0 {
		fmt.Println("no captures found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tFRAMES\tFPS\tSEED")
	for _, c := range captures {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s/%d\n",
			c.ID,
			c.Scene,
			c.Timestamp.Format("2006-01-02 15:04:05"),
			c.Frames,
			c.FPS,
			c.SeedPolicy,
			c.Seed,
		)
	}
	return w.Flush()
}

// series produces the plotted values either from a saved capture or by
// stepping the scene.
func (e *env) series(arg string) (string, []float64, error) {
	if fromStore {
		st := storage.New(e.cfg.DataDir)
		meta, err := st.Load(arg)
		if err != nil {
			return "", nil, err
		}
		samples, _, err := st.LoadSamples(arg)
		if err != nil {
			return "", nil, err
		}
		values := make([]float64, len(samples))
		for i, sum := range samples {
			if values[i], err = sum.Stat(statName); err != nil {
				return "", nil, err
			}
		}
		return meta.Scene, values, nil
	}

	s, view, err := e.openSession(arg)
	if err != nil {
		return "", nil, err
	}
	if !view.OK() {
		return "", nil, fmt.Errorf("%s: %w", view.Text, view.Err)
	}
	defer s.Close()

	dt := 1 / float64(e.cfg.FPS)
	values := make([]float64, 0, plotFrames)
	for i := 0; i < plotFrames; i++ {
		v, err := stats.Sample(statName, s.Frame(float64(i)*dt, dt))
		if err != nil {
			return "", nil, err
		}
		values = append(values, v)
	}
	return s.Descriptor().Slug, values, nil
}

func plotStat(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	name, values, err := e.series(args[0])
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("scene: %s\n", name)
	fmt.Printf("samples: %d\n\n", len(values))
	graph := asciigraph.Plot(values,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(statName+" vs frame"),
	)
	fmt.Println(graph)

	if outFile != "" {
		if err := os.WriteFile(outFile, []byte(export.SeriesToSVG(values, 800, 240, "#00ff88")), 0644); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", outFile)
	}
	return nil
}

func benchScenes(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	slugs := args
	if len(slugs) == 0 {
		slugs = e.reg.Slugs()
	}

	cases := make([]render.BenchCase, 0, len(slugs))
	names := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		d, err := e.reg.Lookup(slug)
		if err != nil {
			return err
		}
		k, err := e.loader.Resolve(d.Generator)
		if err != nil {
			fmt.Printf("skipping %s: %s\n", d.Slug, surface.Fallback(err).Text)
			continue
		}
		cases = append(cases, render.BenchCase{Kind: k, Params: params.Defaults(d.Params), Opts: e.loader.Options()})
		names = append(names, d.Slug)
	}

	ctx, stop := signalContext()
	defer stop()

	fmt.Printf("benchmarking %d scenes, %d ticks each\n\n", len(cases), ticks)
	results, err := render.Bench(ctx, cases, ticks, 1/float64(e.cfg.FPS))
	if err != nil {
		return err
	}

	budget := time.Second / time.Duration(e.cfg.FPS)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENE\tKIND\tMEAN\tWORST\tPOINTS\tBUDGET")
	for i, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%v\t%v\t%d\t%.1f%%\n",
			names[i], r.Kind, r.Mean(), r.Worst, r.Points,
			100*float64(r.Mean())/float64(budget))
	}
	return w.Flush()
}

func validateCatalog(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	reg := e.reg
	if len(args) > 0 {
		descs, err := scene.LoadCatalog(args[0])
		if err != nil {
			return err
		}
		if reg, err = scene.NewRegistry(descs...); err != nil {
			return err
		}
	}
	if err := reg.ValidateAll(); err != nil {
		return err
	}
	for _, d := range reg.All() {
		if _, err := e.loader.Resolve(d.Generator); err != nil {
			fmt.Printf("warning: %s: %v\n", d.Slug, err)
		}
	}
	fmt.Printf("ok: %d scenes\n", reg.Len())
	return nil
}

func listScenePresets(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	slug := scene.NormalizeSlug(args[0])
	names := e.cfg.PresetNames(slug)
	if len(names) == 0 {
		fmt.Printf("no presets for scene: %s\n", slug)
		return nil
	}
	fmt.Printf("presets for %s:\n", slug)
	for _, name := range names {
		p, err := e.cfg.Preset(slug, name)
		if err != nil {
			return err
		}
		values := p.Strings()
		pairs := make([]string, 0, len(values))
		for _, k := range sortedKeys(values) {
			pairs = append(pairs, k+"="+values[k])
		}
		fmt.Printf("  %-10s %s\n", name, strings.Join(pairs, " "))
	}
	return nil
}

func adminPreview(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	editor := admin.NewEditor(e.reg)
	if err := editor.Select(args[0]); err != nil {
		return err
	}
	if cmd.Flags().Changed("title") {
		editor.SetTitle(title)
	}
	if cmd.Flags().Changed("description") {
		editor.SetDescription(description)
	}
	preview, err := editor.Preview()
	if err != nil {
		return err
	}
	fmt.Println(string(preview))
	if editor.Dirty() {
		fmt.Println("(preview only, nothing was saved)")
	}
	return nil
}

func writeConfig(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	if outFile != "" {
		if err := config.Save(outFile, e.cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
		return nil
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(e.cfg)
}
