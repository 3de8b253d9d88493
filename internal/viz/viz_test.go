package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/vizvault/internal/gen"
	"github.com/san-kum/vizvault/internal/geom"
	"github.com/san-kum/vizvault/internal/palette"
	"github.com/san-kum/vizvault/internal/scene"
	"github.com/san-kum/vizvault/internal/surface"
)

func runeKey(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected ⠁, got %q", c.Grid[0][0])
	}
	c.Set(1, 3)
	if c.Grid[0][0] != 0x2881 {
		t.Errorf("expected ⢁, got %q", c.Grid[0][0])
	}
	c.Set(-1, 0)
	c.Set(100, 100)
	if c.Lit() != 2 {
		t.Errorf("expected 2 lit dots, got %d", c.Lit())
	}
	c.Unset(0, 0)
	if c.IsSet(0, 0) || !c.IsSet(1, 3) {
		t.Error("unset cleared the wrong dot")
	}
	c.Clear()
	if c.Lit() != 0 {
		t.Error("expected empty canvas after clear")
	}
}

func TestCanvasRenderKeepsGlyphs(t *testing.T) {
	c := NewCanvas(3, 1)
	c.Pen(geom.Color{R: 1})
	c.Set(0, 0)
	c.Pen(geom.Color{G: 1})
	c.Set(4, 0)
	out := c.Render()
	if !strings.Contains(out, "⠁") {
		t.Errorf("render lost glyphs: %q", out)
	}
	if c.Colors[0][0] != (geom.Color{R: 1}) || c.Colors[0][2] != (geom.Color{G: 1}) {
		t.Error("expected per-cell pen colours")
	}
	if got := c.String(); got != "⠁⠀⠁\n" {
		t.Errorf("unexpected plain render %q", got)
	}
}

func TestCameraProjectsOriginToCenter(t *testing.T) {
	cam := NewCamera()
	x, y, _, visible := cam.Project(geom.Vec3{}, 80, 40)
	if x != 40 || y != 20 || !visible {
		t.Errorf("expected centre (40,20), got (%d,%d) visible=%v", x, y, visible)
	}

	cam.Fit(10)
	x, _, _, visible = cam.Project(geom.V(10, 0, 0), 80, 40)
	if !visible || x <= 40 {
		t.Errorf("fitted point should land right of centre on screen, got x=%d visible=%v", x, visible)
	}

	cam.Position.Z = 5
	if _, _, _, visible := cam.Project(geom.V(0, 0, 100), 80, 40); visible {
		t.Error("points behind the camera must be hidden")
	}
}

func TestWireframeFromFrame(t *testing.T) {
	f := &geom.Frame{}
	f.Instances = append(f.Instances,
		geom.Instance{Shape: geom.ShapeBox, Scale: geom.V(1, 1, 1)},
		geom.Instance{Shape: geom.ShapeSphere, Scale: geom.V(0.5, 0.5, 0.5)},
	)
	pl := f.Polyline(geom.Color{R: 1}, 0.1, true)
	pl.Points = append(pl.Points, geom.V(0, 0, 0), geom.V(1, 0, 0), geom.V(0, 1, 0))
	f.Segments = append(f.Segments, geom.Segment{A: geom.V(0, 0, 0), B: geom.V(0, 0, 1)})

	w := NewWireframe()
	w.FromFrame(f)
	if len(w.Edges) != 12+1+3+1 {
		t.Errorf("expected 17 edges, got %d", len(w.Edges))
	}

	proj := w.Project(NewCamera(), 80, 40)
	for i := 1; i < len(proj); i++ {
		if proj[i].Depth < proj[i-1].Depth {
			t.Fatal("projected edges must be sorted far to near")
		}
	}
}

func TestDrawFrameLightsCentre(t *testing.T) {
	f := &geom.Frame{}
	f.Points = append(f.Points, geom.Point{Position: geom.Vec3{}, Color: geom.Color{B: 1}, Size: 0.1})
	c := NewCanvas(20, 10)
	c.Set(0, 0)

	DrawFrame(c, f, NewCamera())
	if c.IsSet(0, 0) {
		t.Error("DrawFrame should clear the canvas first")
	}
	if !c.IsSet(20, 20) {
		t.Error("expected the origin at the canvas centre")
	}
	if c.Colors[5][10] != (geom.Color{B: 1}) {
		t.Errorf("expected point colour, got %v", c.Colors[5][10])
	}
}

func openDetail(t *testing.T, opts DetailOptions) *Detail {
	t.Helper()
	s, err := surface.Open(scene.Builtin(), gen.NewLoader(gen.Options{}), "orbiting-spheres")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Close)
	return NewDetail(s, opts)
}

func TestDetailAdjustsSelectedControl(t *testing.T) {
	d := openDetail(t, DetailOptions{})

	d.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := d.Session().Params().Number("sphereCount", 0); got != 26 {
		t.Errorf("expected sphereCount 26, got %f", got)
	}

	d.Update(tea.KeyMsg{Type: tea.KeyDown})
	d.Update(runeKey('H'))
	if got := d.Session().Params().Number("orbitRadius", 0); got != 3 {
		t.Errorf("expected orbitRadius 3, got %f", got)
	}

	d.Update(tea.KeyMsg{Type: tea.KeyDown})
	d.Update(tea.KeyMsg{Type: tea.KeyDown})
	d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !d.Session().Params().Bool("wireframe", false) {
		t.Error("enter should flip the wireframe toggle")
	}

	d.Update(runeKey('r'))
	if got := d.Session().Params().Number("sphereCount", 0); got != 25 {
		t.Errorf("reset should restore defaults, got %f", got)
	}
}

func TestDetailCyclesColourSwatches(t *testing.T) {
	s, err := surface.Open(scene.Builtin(), gen.NewLoader(gen.Options{}), "perlin-noise-map")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Close)
	d := NewDetail(s, DetailOptions{})

	for i := 0; i < 4; i++ {
		d.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	d.Update(tea.KeyMsg{Type: tea.KeyRight})
	swatches := palette.Swatches()
	if got := d.Session().Params().String("color", ""); got != swatches[0] {
		t.Errorf("expected first swatch %s, got %s", swatches[0], got)
	}
	if d.message != "" {
		t.Errorf("unexpected message %q", d.message)
	}

	d.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if got := d.Session().Params().String("color", ""); got != "#ffffff" {
		t.Errorf("expected the default back, got %s", got)
	}
}

func TestDetailPauseStopsClock(t *testing.T) {
	d := openDetail(t, DetailOptions{FPS: 10})

	d.Update(TickMsg(time.Now()))
	if d.elapsed < 0.09 {
		t.Fatalf("expected one tick of 0.1s, got %f", d.elapsed)
	}
	d.Update(tea.KeyMsg{Type: tea.KeySpace})
	before := d.elapsed
	d.Update(TickMsg(time.Now()))
	if d.elapsed != before {
		t.Error("paused view must not advance")
	}
	if !strings.Contains(d.View(), "PAUSED") {
		t.Error("expected paused status in view")
	}
}

func TestDetailEscEmbedded(t *testing.T) {
	d := openDetail(t, DetailOptions{Embedded: true})
	_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(BackMsg); !ok {
		t.Error("expected BackMsg from esc in embedded mode")
	}
}

func TestGalleryThumbnailFallback(t *testing.T) {
	reg, err := scene.NewRegistry(
		scene.Descriptor{Slug: "holo", Title: "Hologram", Generator: "HologramViz"},
		scene.BuiltinDescriptors()[0],
	)
	if err != nil {
		t.Fatal(err)
	}
	g := NewGallery(reg, gen.NewLoader(gen.Options{}), DetailOptions{})

	if !strings.Contains(g.View(), surface.UnavailableText) {
		t.Error("expected unavailable placeholder for unregistered generator")
	}
	g.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if g.state != stateGallery {
		t.Error("an unavailable scene must not open")
	}

	g.Update(tea.KeyMsg{Type: tea.KeyDown})
	if !g.thumbErr.OK() || g.frame == nil {
		t.Fatalf("expected a live thumbnail, got %+v", g.thumbErr)
	}

	g.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if g.state != stateDetail || g.detail == nil {
		t.Fatal("expected detail view")
	}
	g.Update(BackMsg{})
	if g.state != stateGallery || g.detail != nil {
		t.Error("BackMsg should return to the gallery")
	}
}

func TestThemesFollowPalettes(t *testing.T) {
	defer SetTheme(ThemeNames()[0])
	if len(Themes) != 4 {
		t.Fatalf("expected one theme per palette, got %d", len(Themes))
	}
	SetTheme("aurora")
	if CurrentTheme.Name != "aurora" {
		t.Errorf("expected aurora, got %s", CurrentTheme.Name)
	}
	NextTheme()
	if CurrentTheme.Name != "nocturne" {
		t.Errorf("expected nocturne after aurora, got %s", CurrentTheme.Name)
	}
	if GetTheme("missing").Name != "infrared" {
		t.Error("unknown themes fall back to the first")
	}
}
