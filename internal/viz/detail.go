package viz

import (
	"fmt"
	"image"
	"image/color"
	colorpal "image/color/palette"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/vizvault/internal/geom"
	"github.com/san-kum/vizvault/internal/params"
	"github.com/san-kum/vizvault/internal/render"
	"github.com/san-kum/vizvault/internal/stats"
	"github.com/san-kum/vizvault/internal/surface"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	panelWidth      = 46
	historyCapacity = 120
)

var (
	canvasStyle      = lipgloss.NewStyle().Padding(1, 2)
	statsStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(panelWidth)
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	noteStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Italic(true)
)

type TickMsg time.Time

// BackMsg asks the parent model to close the detail view.
type BackMsg struct{}

func tick(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// DetailOptions configures a Detail view.
type DetailOptions struct {
	FPS int
	// Embedded makes esc emit BackMsg instead of quitting.
	Embedded bool
	// GIFDir is where recordings are written. Defaults to the working
	// directory.
	GIFDir string
}

// Detail is the interactive view of one scene: a live canvas next to the
// scene's controls and frame statistics.
type Detail struct {
	session       *surface.Session
	opts          DetailOptions
	canvas        *Canvas
	camera        *Camera
	width, height int
	elapsed       float64
	frame         *geom.Frame
	running       bool
	selected      int
	extent        *stats.Extent
	fitted        float64
	counts        []float64
	radii         []float64
	recording     bool
	frames        []*image.Paletted
	showHelp      bool
	message       string
}

func NewDetail(s *surface.Session, opts DetailOptions) *Detail {
	if opts.FPS <= 0 {
		opts.FPS = render.DefaultFPS
	}
	d := &Detail{
		session: s,
		opts:    opts,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		camera:  NewCamera(),
		width:   canvasWidth,
		height:  canvasHeight,
		running: true,
		extent:  stats.NewExtent(),
		counts:  make([]float64, 0, historyCapacity),
		radii:   make([]float64, 0, historyCapacity),
	}
	d.advance(0)
	return d
}

func (m *Detail) Init() tea.Cmd { return tick(m.opts.FPS) }

// Session returns the session the view drives.
func (m *Detail) Session() *surface.Session { return m.session }

func (m *Detail) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return m, m.key(msg)
	case TickMsg:
		if m.running {
			m.advance(1 / float64(m.opts.FPS))
		}
		if m.recording {
			m.captureFrame()
		}
		return m, tick(m.opts.FPS)
	}
	return m, nil
}

func (m *Detail) resize(w, h int) {
	cw := max(w-panelWidth-8, 20)
	ch := max(h-4, 8)
	m.width, m.height = cw, ch
	m.canvas = NewCanvas(cw, ch)
}

func (m *Detail) key(msg tea.KeyMsg) tea.Cmd {
	controls := m.session.Controls()
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "esc":
		if m.opts.Embedded {
			return func() tea.Msg { return BackMsg{} }
		}
		return tea.Quit
	case " ":
		m.running = !m.running
	case "r":
		m.session.Reset()
		m.message = "parameters reset"
	case "c":
		m.camera.Reset()
	case "tab", "down", "j":
		if len(controls) > 0 {
			m.selected = (m.selected + 1) % len(controls)
		}
	case "shift+tab", "up", "k":
		if len(controls) > 0 {
			m.selected = (m.selected - 1 + len(controls)) % len(controls)
		}
	case "right", "l", "enter":
		m.nudge(controls, 1)
	case "left", "h":
		m.nudge(controls, -1)
	case "L":
		m.nudge(controls, 10)
	case "H":
		m.nudge(controls, -10)
	case "g":
		if m.recording {
			m.message = m.saveGIF()
			m.recording = false
			m.frames = nil
		} else {
			m.recording = true
			m.frames = make([]*image.Paletted, 0)
		}
	case "?":
		m.showHelp = !m.showHelp
	case "t":
		NextTheme()
	case "x":
		m.camera.RotateX(0.1)
	case "X":
		m.camera.RotateX(-0.1)
	case "y":
		m.camera.RotateY(0.1)
	case "Y":
		m.camera.RotateY(-0.1)
	case "z":
		m.camera.RotateZ(0.1)
	case "Z":
		m.camera.RotateZ(-0.1)
	case "+", "=":
		m.camera.ZoomIn()
	case "-", "_":
		m.camera.ZoomOut()
	}
	return nil
}

// nudge steps the selected control by n increments.
func (m *Detail) nudge(controls []surface.Control, n int) {
	if m.selected >= len(controls) {
		return
	}
	c := controls[m.selected]
	if c.Type == surface.Unsupported {
		m.message = "not adjustable here"
		return
	}
	if err := m.session.Set(c.Spec.Name, params.Step(c.Spec, c.Value, n)); err != nil {
		m.message = err.Error()
		return
	}
	m.message = ""
}

// advance moves the clock by dt and regenerates the frame.
func (m *Detail) advance(dt float64) {
	m.elapsed += dt
	m.frame = m.session.Frame(m.elapsed, dt)
	if m.frame == nil {
		return
	}
	m.extent.Observe(m.frame, m.elapsed)
	if r := m.extent.Value(); r > m.fitted*1.1 || m.fitted == 0 {
		m.fitted = r
		m.camera.Fit(r)
	}
	s := stats.Summarize(m.frame)
	m.counts = appendCapped(m.counts, float64(s.Count))
	m.radii = appendCapped(m.radii, s.Radius)
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Detail) View() string {
	DrawFrame(m.canvas, m.frame, m.camera)
	canvasView := canvasStyle.Render(m.canvas.Render())

	desc := m.session.Descriptor()
	var s strings.Builder
	s.WriteString(HeaderStyle.Render(strings.ToUpper(desc.Title)) + "\n")
	s.WriteString(Subtle.Render(wrap(desc.Description, panelWidth-6)) + "\n\n")

	switch {
	case m.recording:
		s.WriteString(StatusRecording.Render(fmt.Sprintf("REC %d", len(m.frames))))
	case m.running:
		s.WriteString(StatusRunning.Render("RUNNING"))
	default:
		s.WriteString(StatusPaused.Render("PAUSED"))
	}
	s.WriteString("\n")

	if len(m.radii) > 1 {
		chart := asciigraph.Plot(m.radii, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Extent"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	loop := m.session.Loop()
	s.WriteString(MetricLabel.Render("Time") + MetricValue.Render(fmt.Sprintf("%.2fs", m.elapsed)) + "\n")
	if loop != nil {
		s.WriteString(MetricLabel.Render("Frames") + MetricValue.Render(fmt.Sprintf("%d", loop.Frames())) + "\n")
		s.WriteString(MetricLabel.Render("Cost") + MetricValue.Render(loop.Cost().String()) + "\n")
	}
	if n := len(m.counts); n > 0 {
		s.WriteString(MetricLabel.Render("Primitives") + MetricValue.Render(fmt.Sprintf("%.0f", m.counts[n-1])) + "\n")
	}
	s.WriteString(MetricLabel.Render("Theme") + MetricValue.Render(CurrentTheme.Name) + "\n")

	s.WriteString("\nCONTROLS\n")
	controls := m.session.Controls()
	if len(controls) == 0 {
		s.WriteString(MetricLabel.Render("  (none)") + "\n")
	}
	for i, c := range controls {
		line := controlLine(c)
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + Subtle.Render(line) + "\n")
		}
	}
	for _, tip := range desc.Tips {
		s.WriteString(KeyHint.Render(wrap("· "+tip, panelWidth-6)) + "\n")
	}
	if m.message != "" {
		s.WriteString("\n" + noteStyle.Render(m.message) + "\n")
	}
	s.WriteString("\n" + Separator(panelWidth-6) + "\n")
	s.WriteString(KeyHint.Render("SP:Pause R:Reset ←→:Tune ↑↓:Select\nxyz:Orbit +-:Zoom T:Theme G:Record ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume animation   ║
║  R        - Reset parameters         ║
║  C        - Reset camera             ║
║  Tab/↑↓   - Select control           ║
║  ←→ / HL  - Adjust control (x1/x10)  ║
║  Enter    - Toggle / next option     ║
║  x y z    - Orbit camera (shift: -)  ║
║  + -      - Zoom                     ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  Esc      - Back to gallery          ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

func controlLine(c surface.Control) string {
	const barWidth = 10
	name := c.Spec.Label
	if name == "" {
		name = c.Spec.Name
	}
	switch c.Type {
	case surface.Slider:
		f, _ := c.Value.Float()
		ratio := 0.0
		if c.Spec.Max > c.Spec.Min {
			ratio = (f - c.Spec.Min) / (c.Spec.Max - c.Spec.Min)
		}
		filled := max(0, min(barWidth, int(ratio*barWidth)))
		bar := "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
		return fmt.Sprintf("%-14s %s %s", name, bar, c.Label())
	case surface.ColorPicker:
		hex, _ := c.Value.Str()
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■")
		return fmt.Sprintf("%-14s %s %s", name, swatch, hex)
	}
	return fmt.Sprintf("%-14s %s", name, c.Label())
}

func wrap(text string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(text)
}

// captureFrame rasterises the canvas dots into a GIF frame, one 4x4 block
// per dot, in each cell's colour.
func (m *Detail) captureFrame() {
	const dot = 4
	imgW, imgH := m.canvas.Width*2*dot, m.canvas.Height*4*dot
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), colorpal.WebSafe)
	bg := geom.Color{}
	if m.frame != nil {
		bg = m.frame.Background
	}
	fill := img.Palette.Index(rgba(bg))
	for i := range img.Pix {
		img.Pix[i] = uint8(fill)
	}
	sw, sh := m.canvas.Dots()
	for y := 0; y < sh; y++ {
		for x := 0; x < sw; x++ {
			if !m.canvas.IsSet(x, y) {
				continue
			}
			idx := uint8(img.Palette.Index(rgba(m.canvas.Colors[y/4][x/2])))
			for py := 0; py < dot; py++ {
				for px := 0; px < dot; px++ {
					img.SetColorIndex(x*dot+px, y*dot+py, idx)
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func rgba(c geom.Color) color.RGBA {
	r, g, b, a := c.RGBA8()
	return color.RGBA{R: r, G: g, B: b, A: a}
}

// saveGIF writes the recording and returns a status line.
func (m *Detail) saveGIF() string {
	if len(m.frames) == 0 {
		return "nothing recorded"
	}
	anim := gif.GIF{LoopCount: 0}
	delay := max(100/m.opts.FPS, 2)
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	path := filepath.Join(m.opts.GIFDir, m.session.Descriptor().Slug+".gif")
	f, err := os.Create(path)
	if err != nil {
		return err.Error()
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		return err.Error()
	}
	return "saved " + path
}

// RunDetail runs a standalone detail view until the user quits.
func RunDetail(s *surface.Session, opts DetailOptions) error {
	opts.Embedded = false
	_, err := tea.NewProgram(NewDetail(s, opts), tea.WithAltScreen()).Run()
	return err
}
