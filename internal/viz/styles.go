package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/vizvault/internal/palette"
)

var (
	GlassPanel    lipgloss.Style
	GradientTitle lipgloss.Style
	NeonGlow      lipgloss.Style
	Subtle        lipgloss.Style

	StatusRunning   lipgloss.Style
	StatusPaused    lipgloss.Style
	StatusRecording lipgloss.Style

	MetricValue lipgloss.Style
	MetricLabel lipgloss.Style
	KeyHint     lipgloss.Style
	HeaderStyle lipgloss.Style

	SparkHigh lipgloss.Style
	SparkMid  lipgloss.Style
	SparkLow  lipgloss.Style
)

func init() { applyTheme(CurrentTheme) }

func applyTheme(t Theme) {
	GlassPanel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Muted).
		Padding(1, 2)
	GradientTitle = lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	NeonGlow = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	Subtle = lipgloss.NewStyle().Foreground(t.Muted)

	StatusRunning = lipgloss.NewStyle().Bold(true).Foreground(t.Secondary)
	StatusPaused = lipgloss.NewStyle().Bold(true).Foreground(t.Warning)
	StatusRecording = lipgloss.NewStyle().Bold(true).Foreground(t.Error).Blink(true)

	MetricValue = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	MetricLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899")).Width(12)
	KeyHint = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688")).Italic(true)
	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Text).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.Muted)

	SparkHigh = lipgloss.NewStyle().Foreground(t.Primary)
	SparkMid = lipgloss.NewStyle().Foreground(t.Secondary)
	SparkLow = lipgloss.NewStyle().Foreground(t.Accent)
}

// GradientText creates a gradient effect on text using color interpolation
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	start := palette.MustParse(string(startColor))
	end := palette.MustParse(string(endColor))

	var result strings.Builder
	for i, c := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(start.Lerp(end, t).Hex()))
		result.WriteString(style.Render(string(c)))
	}
	return result.String()
}

// AnimatedSpinner returns frame of animated spinner
func AnimatedSpinner(frame int) string {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return spinners[frame%len(spinners)]
}

// ProgressBar renders the fraction percent of width as a bar.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return SparkHigh.Render(strings.Repeat("█", filled)) + Subtle.Render(strings.Repeat("░", width-filled))
}

// SparklineChart renders a mini sparkline from values
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := min(max(int(norm*float64(len(chars)-1)), 0), len(chars)-1)
		c := string(chars[idx])
		switch {
		case norm > 0.7:
			result.WriteString(SparkHigh.Render(c))
		case norm > 0.3:
			result.WriteString(SparkMid.Render(c))
		default:
			result.WriteString(SparkLow.Render(c))
		}
	}
	return result.String()
}

func Separator(width int) string {
	if width < 8 {
		return Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return Subtle.Render(left + " ◆ " + right)
}
