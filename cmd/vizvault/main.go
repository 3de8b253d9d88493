package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/san-kum/vizvault/internal/config"
	"github.com/san-kum/vizvault/internal/gen"
	"github.com/san-kum/vizvault/internal/gui"
	"github.com/san-kum/vizvault/internal/scene"
	"github.com/san-kum/vizvault/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	catalog    string
	dataDir    string
	seedPolicy string
	seed       int32
	fps        int
	sets       []string
	preset     string
	// render
	format  string
	atTime  float64
	width   int
	height  int
	outFile string
	// capture / plot / bench
	frames     int
	plotFrames int
	statName   string
	ticks      int
	fromStore  bool
	// serve
	addr string
	// admin
	title       string
	description string
)

// env is what every command resolves before it runs: the effective config,
// the scene registry and the generator loader.
type env struct {
	cfg    *config.Config
	reg    *scene.Registry
	loader *gen.Loader
}

func main() {
	rootCmd := &cobra.Command{
		Use:          "vizvault",
		Short:        "gallery of procedural 3D scenes",
		SilenceUsage: true,
		RunE:         runGallery,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&catalog, "catalog", "", "scene catalog (yaml), replaces the built-in scenes")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "capture directory")
	rootCmd.PersistentFlags().StringVar(&seedPolicy, "seed-policy", config.DefaultSeedPolicy, "random stream policy (reseed | session)")
	rootCmd.PersistentFlags().Int32Var(&seed, "seed", config.DefaultSeed, "seed for the session policy")
	rootCmd.PersistentFlags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	rootCmd.PersistentFlags().StringArrayVar(&sets, "set", nil, "parameter override name=value (repeatable)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "apply a named parameter preset")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list scenes",
		RunE:  listScenes,
	}

	showCmd := &cobra.Command{
		Use:   "show [slug]",
		Short: "terminal detail view with live controls",
		Args:  cobra.ExactArgs(1),
		RunE:  showScene,
	}

	windowCmd := &cobra.Command{
		Use:   "window [slug]",
		Short: "open the native window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWindow,
	}
	windowCmd.Flags().IntVar(&width, "width", config.DefaultWidth, "window width")
	windowCmd.Flags().IntVar(&height, "height", config.DefaultHeight, "window height")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the gallery to browsers",
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")

	renderCmd := &cobra.Command{
		Use:   "render [slug]",
		Short: "render one frame to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  renderScene,
	}
	renderCmd.Flags().StringVar(&format, "format", "braille", "output format (braille | json | svg)")
	renderCmd.Flags().Float64Var(&atTime, "time", 0, "scene time in seconds")
	renderCmd.Flags().IntVar(&width, "width", 0, "width in cells (braille) or pixels (svg)")
	renderCmd.Flags().IntVar(&height, "height", 0, "height in cells (braille) or pixels (svg)")
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "", "write to file instead of stdout")

	captureCmd := &cobra.Command{
		Use:   "capture [slug]",
		Short: "record frame statistics into the data directory",
		Args:  cobra.ExactArgs(1),
		RunE:  captureScene,
	}
	captureCmd.Flags().IntVar(&frames, "frames", 300, "number of frames")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "record a scripted sequence of captures (yaml)",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	capturesCmd := &cobra.Command{
		Use:   "captures",
		Short: "list captures",
		RunE:  listCaptures,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [slug | capture_id]",
		Short: "plot a frame statistic over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotStat,
	}
	plotCmd.Flags().StringVar(&statName, "stat", "extent", "statistic to plot (count | extent | height)")
	plotCmd.Flags().IntVar(&plotFrames, "frames", 240, "frames to simulate for a scene")
	plotCmd.Flags().BoolVar(&fromStore, "capture", false, "treat the argument as a capture id")
	plotCmd.Flags().StringVarP(&outFile, "out", "o", "", "also write the series as svg")

	benchCmd := &cobra.Command{
		Use:   "bench [slug...]",
		Short: "time generators per tick",
		RunE:  benchScenes,
	}
	benchCmd.Flags().IntVar(&ticks, "ticks", 600, "ticks per scene")

	validateCmd := &cobra.Command{
		Use:   "validate [catalog]",
		Short: "check every default against its bounds",
		Args:  cobra.MaximumNArgs(1),
		RunE:  validateCatalog,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [slug]",
		Short: "list parameter presets for a scene",
		Args:  cobra.ExactArgs(1),
		RunE:  listScenePresets,
	}

	adminCmd := &cobra.Command{
		Use:   "admin [slug]",
		Short: "preview a title/description edit without saving it",
		Args:  cobra.ExactArgs(1),
		RunE:  adminPreview,
	}
	adminCmd.Flags().StringVar(&title, "title", "", "new title")
	adminCmd.Flags().StringVar(&description, "description", "", "new description")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as yaml",
		RunE:  writeConfig,
	}
	configCmd.Flags().StringVarP(&outFile, "out", "o", "", "write to file instead of stdout")

	rootCmd.AddCommand(listCmd, showCmd, windowCmd, serveCmd, renderCmd, captureCmd, scenarioCmd,
		capturesCmd, plotCmd, benchCmd, validateCmd, presetsCmd, adminCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the config file, lets explicitly set flags win over it, and
// builds the registry and loader.
func setup(cmd *cobra.Command) (*env, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("catalog") {
		cfg.Catalog = catalog
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("seed-policy") {
		cfg.SeedPolicy = seedPolicy
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if cfg.FPS <= 0 {
		cfg.FPS = config.DefaultFPS
	}
	if flags.Changed("addr") {
		cfg.Web.Addr = addr
	}
	if flags.Changed("width") && cmd.Name() == "window" {
		cfg.Window.Width = width
	}
	if flags.Changed("height") && cmd.Name() == "window" {
		cfg.Window.Height = height
	}

	policy, err := gen.ParseSeedPolicy(cfg.SeedPolicy)
	if err != nil {
		return nil, err
	}

	reg := scene.Builtin()
	if cfg.Catalog != "" {
		descs, err := scene.LoadCatalog(cfg.Catalog)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		if reg, err = scene.NewRegistry(descs...); err != nil {
			return nil, err
		}
	}

	viz.SetTheme(cfg.Theme)

	return &env{
		cfg:    cfg,
		reg:    reg,
		loader: gen.NewLoader(gen.Options{SeedPolicy: policy, Seed: cfg.Seed}),
	}, nil
}

// overrides merges, in rising priority, the config file's scene params, the
// selected preset and --set pairs.
func (e *env) overrides(slug string) (map[string]string, error) {
	slug = scene.NormalizeSlug(slug)
	out := make(map[string]string)
	for k, v := range e.cfg.SceneParams(slug) {
		out[k] = v
	}
	if preset != "" {
		p, err := e.cfg.Preset(slug, preset)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, e.cfg.PresetNames(slug))
		}
		for k, v := range p.Strings() {
			out[k] = v
		}
	}
	for _, kv := range sets {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("bad --set %q, want name=value", kv)
		}
		out[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return out, nil
}

func runGallery(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	return viz.RunGallery(e.reg, e.loader, viz.DetailOptions{FPS: e.cfg.FPS, GIFDir: e.cfg.DataDir})
}

func runWindow(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	slug := e.cfg.Scene
	if len(args) > 0 {
		slug = args[0]
	}
	ov, err := e.overrides(slug)
	if err != nil {
		return err
	}
	gui.Run(e.reg, e.loader, slug, gui.Options{
		Width:     e.cfg.Window.Width,
		Height:    e.cfg.Window.Height,
		FPS:       e.cfg.FPS,
		Title:     "vizvault",
		Overrides: ov,
	})
	return nil
}

// signalContext is cancelled on interrupt.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
