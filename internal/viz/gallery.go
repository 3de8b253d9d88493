package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/vizvault/internal/gen"
	"github.com/san-kum/vizvault/internal/geom"
	"github.com/san-kum/vizvault/internal/scene"
	"github.com/san-kum/vizvault/internal/stats"
	"github.com/san-kum/vizvault/internal/surface"
)

const (
	stateGallery = iota
	stateDetail
)

const (
	thumbWidth  = 40
	thumbHeight = 14
)

// Gallery lists every scene with a live thumbnail of the one under the
// cursor. Enter opens the scene in a Detail view.
type Gallery struct {
	state, cursor int
	reg           *scene.Registry
	loader        *gen.Loader
	scenes        []scene.Descriptor
	opts          DetailOptions

	thumb    *surface.Session
	thumbErr surface.View
	canvas   *Canvas
	camera   *Camera
	elapsed  float64
	frame    *geom.Frame

	detail        *Detail
	width, height int
}

func NewGallery(reg *scene.Registry, loader *gen.Loader, opts DetailOptions) *Gallery {
	g := &Gallery{
		state:  stateGallery,
		reg:    reg,
		loader: loader,
		scenes: reg.All(),
		opts:   opts,
		canvas: NewCanvas(thumbWidth, thumbHeight),
		camera: NewCamera(),
		width:  120, height: 32,
	}
	if g.opts.FPS <= 0 {
		g.opts.FPS = 30
	}
	g.opts.Embedded = true
	g.hover()
	return g
}

func (m *Gallery) Init() tea.Cmd { return tick(m.opts.FPS) }

// hover points the thumbnail session at the scene under the cursor.
func (m *Gallery) hover() {
	if len(m.scenes) == 0 {
		return
	}
	slug := m.scenes[m.cursor].Slug
	m.elapsed, m.frame = 0, nil
	m.camera.Reset()
	var err error
	if m.thumb == nil {
		m.thumb, err = surface.Open(m.reg, m.loader, slug)
	} else {
		err = m.thumb.Switch(slug)
	}
	m.thumbErr = surface.Fallback(err)
	m.step(0)
}

func (m *Gallery) step(dt float64) {
	if m.thumb == nil || !m.thumbErr.OK() {
		return
	}
	m.elapsed += dt
	m.frame = m.thumb.Frame(m.elapsed, dt)
	if m.frame != nil && m.elapsed == 0 {
		m.camera.Fit(stats.Summarize(m.frame).Radius)
	}
	m.camera.RotY = m.elapsed * 0.2
}

func (m *Gallery) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.detail != nil {
			m.detail.resize(msg.Width, msg.Height)
		}
		return m, nil
	case BackMsg:
		m.closeDetail()
		return m, nil
	case tea.KeyMsg:
		if m.state == stateGallery {
			return m, m.menuKey(msg)
		}
	case TickMsg:
		if m.state == stateGallery {
			m.step(1 / float64(m.opts.FPS))
			return m, tick(m.opts.FPS)
		}
	}
	if m.state == stateDetail && m.detail != nil {
		_, cmd := m.detail.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Gallery) menuKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		if m.thumb != nil {
			m.thumb.Close()
		}
		return tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.hover()
		}
	case "down", "j":
		if m.cursor < len(m.scenes)-1 {
			m.cursor++
			m.hover()
		}
	case "t":
		NextTheme()
	case "enter", " ":
		return m.openDetail()
	}
	return nil
}

func (m *Gallery) openDetail() tea.Cmd {
	if len(m.scenes) == 0 || !m.thumbErr.OK() {
		return nil
	}
	s, err := surface.Open(m.reg, m.loader, m.scenes[m.cursor].Slug)
	if err != nil {
		m.thumbErr = surface.Fallback(err)
		return nil
	}
	m.detail = NewDetail(s, m.opts)
	m.detail.resize(m.width, m.height)
	m.state = stateDetail
	// ticks keep flowing through Update and are forwarded to the detail view
	return nil
}

func (m *Gallery) closeDetail() {
	if m.detail != nil {
		m.detail.Session().Close()
		m.detail = nil
	}
	m.state = stateGallery
}

func (m *Gallery) View() string {
	if m.state == stateDetail && m.detail != nil {
		return m.detail.View()
	}
	return m.viewGallery()
}

func (m *Gallery) viewGallery() string {
	var b strings.Builder
	b.WriteString("\n\n    " + GradientText("VIZVAULT", CurrentTheme.Primary, CurrentTheme.Accent) + "\n    " + Subtle.Render("procedural scene gallery") + "\n    " + Subtle.Render("─────────────────────────") + "\n\n")
	for i, d := range m.scenes {
		desc := d.Description
		if len([]rune(desc)) > 34 {
			desc = string([]rune(desc)[:31]) + "..."
		}
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", GradientTitle.Render("▸"), lipgloss.NewStyle().Foreground(CurrentTheme.Text).Bold(true).Render(fmt.Sprintf("%-22s", d.Title)), NeonGlow.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", Subtle.Render(fmt.Sprintf("  %-22s", d.Title)), Subtle.Render(desc)))
		}
	}
	b.WriteString("\n    " + hint("j/k", "navigate") + hint("enter", "open") + hint("t", "theme") + hint("q", "quit") + "\n")

	return lipgloss.JoinHorizontal(lipgloss.Top, b.String(), GlassPanel.Render(m.viewThumb()))
}

func (m *Gallery) viewThumb() string {
	if len(m.scenes) == 0 {
		return Subtle.Render(surface.NotFoundText)
	}
	if !m.thumbErr.OK() {
		blank := strings.Repeat(strings.Repeat(" ", thumbWidth)+"\n", thumbHeight/2)
		return blank + lipgloss.PlaceHorizontal(thumbWidth, lipgloss.Center, StatusPaused.Render(m.thumbErr.Text)) + "\n" + blank
	}
	DrawFrame(m.canvas, m.frame, m.camera)
	d := m.scenes[m.cursor]
	return GradientTitle.Render(d.Title) + "\n" + Subtle.Render("/viz/"+d.Slug) + "\n\n" + m.canvas.Render()
}

func hint(key, what string) string {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Secondary).Bold(true).Render(key) + KeyHint.Render(" "+what+"  ")
}

// RunGallery runs the interactive gallery until the user quits.
func RunGallery(reg *scene.Registry, loader *gen.Loader, opts DetailOptions) error {
	_, err := tea.NewProgram(NewGallery(reg, loader, opts), tea.WithAltScreen()).Run()
	return err
}
