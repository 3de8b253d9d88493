package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/vizvault/internal/palette"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// FromPalette derives a UI theme from a scene palette.
func FromPalette(p palette.Palette) Theme {
	bg := palette.MustParse(p.Background)
	return Theme{
		Name:       p.Name,
		Primary:    lipgloss.Color(p.At(0).Hex()),
		Secondary:  lipgloss.Color(p.At(1.0 / 3).Hex()),
		Accent:     lipgloss.Color(p.At(2.0 / 3).Hex()),
		Background: lipgloss.Color(p.Background),
		Text:       lipgloss.Color("#e8ecf4"),
		Muted:      lipgloss.Color(palette.Shade(bg, 0.4).Hex()),
		Warning:    lipgloss.Color("#ffaa00"),
		Error:      lipgloss.Color("#ff4757"),
	}
}

var (
	// All available themes, one per palette.
	Themes = func() []Theme {
		out := make([]Theme, len(palette.Palettes))
		for i, p := range palette.Palettes {
			out[i] = FromPalette(p)
		}
		return out
	}()

	CurrentTheme = Themes[0]
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// SetTheme changes the current theme and restyles the shared styles.
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
	applyTheme(CurrentTheme)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
	SetTheme(names[0])
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
