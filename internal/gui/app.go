// Package gui is the raylib window surface: a scene menu and a live 3D view
// with keyboard-driven parameter controls.
package gui

import (
	"fmt"
	"log"
	"math"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/vizvault/internal/gen"
	"github.com/san-kum/vizvault/internal/geom"
	"github.com/san-kum/vizvault/internal/params"
	"github.com/san-kum/vizvault/internal/scene"
	"github.com/san-kum/vizvault/internal/stats"
	"github.com/san-kum/vizvault/internal/surface"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColWarn    = rl.NewColor(255, 120, 90, 255)
)

const (
	maxTelemetry = 200
	fontPath     = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
)

// Options configures the window.
type Options struct {
	Width, Height int
	FPS           int
	Title         string
	// Overrides are applied whenever a scene is opened.
	Overrides map[string]string
}

type App struct {
	reg    *scene.Registry
	loader *gen.Loader
	opts   Options
	scenes []scene.Descriptor

	Session  *surface.Session
	Fallback surface.View
	Frame    *geom.Frame
	Elapsed  float64
	Running  bool
	InMenu   bool
	Selected int
	ParamSel int

	Camera    rl.Camera3D
	Yaw       float64
	Pitch     float64
	Distance  float64
	extent    *stats.Extent
	fitted    float64
	Telemetry []float64
	Font      rl.Font
	Message   string
}

// initWindow opens the raylib window and disables the default exit key.
func initWindow(opts Options) {
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(0)
}

// loadFont loads Liberation Mono when it is installed and falls back to the
// raylib default font.
func loadFont() rl.Font {
	if _, err := os.Stat(fontPath); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp creates the app. An empty start slug opens the scene menu.
func NewApp(reg *scene.Registry, loader *gen.Loader, start string, opts Options) *App {
	a := &App{
		reg:       reg,
		loader:    loader,
		opts:      opts,
		scenes:    reg.All(),
		Font:      loadFont(),
		InMenu:    start == "",
		Pitch:     0.35,
		Distance:  30,
		extent:    stats.NewExtent(),
		Telemetry: make([]float64, 0, maxTelemetry),
	}
	a.updateCamera()
	if start != "" {
		a.open(start)
	}
	return a
}

func withDefaults(opts Options) Options {
	if opts.Width <= 0 {
		opts.Width = 1280
	}
	if opts.Height <= 0 {
		opts.Height = 720
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Title == "" {
		opts.Title = "vizvault"
	}
	return opts
}

// Run opens the window on start (or the menu when start is empty) and
// blocks until the window is closed.
func Run(reg *scene.Registry, loader *gen.Loader, start string, opts Options) {
	opts = withDefaults(opts)
	initWindow(opts)
	defer rl.CloseWindow()
	app := NewApp(reg, loader, start, opts)
	defer app.Close()
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

func (a *App) Close() {
	if a.Session != nil {
		a.Session.Close()
		a.Session = nil
	}
}

// open switches to slug. On failure the placeholder view is shown instead
// of a frame.
func (a *App) open(slug string) {
	var err error
	if a.Session == nil {
		a.Session, err = surface.Open(a.reg, a.loader, slug)
	} else {
		err = a.Session.Switch(slug)
	}
	a.Fallback = surface.Fallback(err)
	a.Frame, a.Elapsed, a.ParamSel, a.Message = nil, 0, 0, ""
	a.extent.Reset()
	a.fitted = 0
	a.Telemetry = a.Telemetry[:0]
	a.Running = err == nil
	if err != nil {
		log.Printf("[gui] open %s: %v", slug, err)
		return
	}
	if err := a.Session.Apply(a.opts.Overrides); err != nil {
		log.Printf("[gui] overrides for %s: %v", slug, err)
	}
	log.Printf("[gui] opened %s", slug)
}

// Update handles input and advances the scene. It returns false when the
// user quits.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return false
	}

	if a.InMenu {
		a.menuKeys()
		return true
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		a.InMenu = true
		return true
	}
	a.controlKeys()
	a.cameraKeys()

	if a.Running && a.Session != nil && a.Fallback.OK() {
		dt := float64(rl.GetFrameTime())
		a.Elapsed += dt
		a.Frame = a.Session.Frame(a.Elapsed, dt)
		a.observe()
	}
	return true
}

func (a *App) menuKeys() {
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.Selected++
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.Selected--
	}

	// Wrap selection
	if a.Selected >= len(a.scenes) {
		a.Selected = 0
	}
	if a.Selected < 0 {
		a.Selected = len(a.scenes) - 1
	}

	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace)) && len(a.scenes) > 0 {
		a.open(a.scenes[a.Selected].Slug)
		a.InMenu = false
	}
}

func (a *App) controlKeys() {
	if a.Session == nil || !a.Fallback.OK() {
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Session.Reset()
		a.Message = "parameters reset"
	}

	controls := a.Session.Controls()
	if len(controls) == 0 {
		return
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		a.ParamSel = (a.ParamSel + 1) % len(controls)
	}
	a.ParamSel = min(a.ParamSel, len(controls)-1)

	n := 1
	if rl.IsKeyDown(rl.KeyLeftShift) {
		n = 10
	}
	switch {
	case rl.IsKeyPressed(rl.KeyRightBracket):
	case rl.IsKeyPressed(rl.KeyLeftBracket):
		n = -n
	default:
		return
	}
	c := controls[a.ParamSel]
	if c.Type == surface.Unsupported {
		a.Message = "not adjustable here"
		return
	}
	if err := a.Session.Set(c.Spec.Name, params.Step(c.Spec, c.Value, n)); err != nil {
		a.Message = err.Error()
	}
}

func (a *App) cameraKeys() {
	dt := float64(rl.GetFrameTime())
	if rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA) {
		a.Yaw -= 1.5 * dt
	}
	if rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD) {
		a.Yaw += 1.5 * dt
	}
	if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW) {
		a.Pitch = math.Min(1.4, a.Pitch+1.5*dt)
	}
	if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS) {
		a.Pitch = math.Max(-1.4, a.Pitch-1.5*dt)
	}
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		a.Yaw += float64(delta.X) * 0.005
		a.Pitch = math.Max(-1.4, math.Min(1.4, a.Pitch+float64(delta.Y)*0.005))
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.Distance = math.Max(2, a.Distance*(1-float64(wheel)*0.1))
	}
	a.updateCamera()
}

// observe records telemetry and refits the camera when the scene grows.
func (a *App) observe() {
	if a.Frame == nil {
		return
	}
	a.extent.Observe(a.Frame, a.Elapsed)
	if r := a.extent.Value(); r > 0 && (a.fitted == 0 || r > a.fitted*1.1) {
		a.fitted = r
		a.Distance = r * 2.6
	}
	a.Telemetry = append(a.Telemetry, stats.Summarize(a.Frame).Radius)
	if len(a.Telemetry) > maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) updateCamera() {
	x := a.Distance * math.Cos(a.Pitch) * math.Sin(a.Yaw)
	y := a.Distance * math.Sin(a.Pitch)
	z := a.Distance * math.Cos(a.Pitch) * math.Cos(a.Yaw)
	a.Camera = rl.NewCamera3D(
		rl.NewVector3(float32(x), float32(y), float32(z)),
		rl.NewVector3(0, 0, 0),
		rl.NewVector3(0, 1, 0),
		45.0,
		rl.CameraPerspective,
	)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	bg := rl.NewColor(10, 10, 10, 255)
	if a.Frame != nil && !a.InMenu {
		bg = toColor(a.Frame.Background)
	}
	rl.ClearBackground(bg)

	if a.InMenu {
		a.drawMenu()
	} else {
		a.drawScene()
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) drawScene() {
	if !a.Fallback.OK() {
		w := rl.MeasureTextEx(a.Font, a.Fallback.Text, 28, 1)
		a.drawText(a.Fallback.Text, (a.opts.Width-int(w.X))/2, a.opts.Height/2, 28, ColWarn)
		return
	}
	rl.BeginMode3D(a.Camera)
	DrawFrame(a.Frame)
	rl.EndMode3D()
}

func (a *App) DrawHUD() {
	title := "vizvault"
	if a.Session != nil {
		title = a.Session.Descriptor().Title
	}
	a.drawText(title, 30, 30, 24, ColSelect)

	status, col := "RUNNING", ColSelect
	if !a.Running {
		status, col = "PAUSED", ColTextDim
	}
	a.drawText(status, a.opts.Width-130, 30, 16, col)

	if a.Session != nil && a.Fallback.OK() {
		y := 80
		for i, c := range a.Session.Controls() {
			line := fmt.Sprintf("  %-18s %s", c.Spec.Label, c.Label())
			clr := ColText
			if i == a.ParamSel {
				line, clr = fmt.Sprintf("> %-18s %s", c.Spec.Label, c.Label()), ColSelect
			}
			a.drawText(line, 30, y, 16, clr)
			y += 22
		}
		if a.Message != "" {
			a.drawText(a.Message, 30, y+10, 14, ColWarn)
		}
		if loop := a.Session.Loop(); loop != nil {
			a.drawText(fmt.Sprintf("gen %s", loop.Cost()), 30, a.opts.Height-70, 14, ColTextDim)
		}
	}

	a.DrawTelemetry()
	a.drawText("[SPACE] PAUSE  [R] RESET  [TAB] PARAM  [ ] ADJUST  [ESC] MENU  [Q] QUIT", a.opts.Width-640, a.opts.Height-40, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, a.opts.Height-40, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

// DrawTelemetry plots the recent bounding radius as a line strip.
func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := a.opts.Width-450, a.opts.Height-140
	width, height := 400, 60

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal, maxVal = math.Min(minVal, v), math.Max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("R: %.2f", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}

func (a *App) drawMenu() {
	a.drawText("vizvault", 50, 50, 40, ColSelect)
	a.drawText("Select Scene", 50, 100, 16, ColTextDim)

	limit := 18
	startIdx := 0
	if a.Selected >= limit {
		startIdx = a.Selected - limit + 1
	}

	y := 160
	for i := startIdx; i < len(a.scenes) && i < startIdx+limit; i++ {
		d := a.scenes[i]
		if i == a.Selected {
			a.drawText(fmt.Sprintf("> %s", d.Title), 50, y, 20, ColSelect)
			a.drawText(d.Description, 460, y+4, 14, ColText)
		} else {
			a.drawText(fmt.Sprintf("  %s", d.Title), 50, y, 20, ColText)
		}
		y += 28
	}

	a.drawText("ARROWS: NAVIGATE  ENTER: SELECT  Q: QUIT", a.opts.Width-430, a.opts.Height-40, 14, ColTextDim)
}
