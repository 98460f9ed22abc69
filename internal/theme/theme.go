package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme names. Dark is the built-in default applied when no preference has
// been persisted.
const (
	Dark  = "dark"
	Light = "light"

	DefaultName = Dark
)

// Palette bundles the lipgloss styles used across the TUI.
// All rendering helpers pull from the active palette.
type Palette struct {
	Name string

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Accent   lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style

	// Filter bar
	FilterActive   lipgloss.Style
	FilterInactive lipgloss.Style

	// Project cards
	CardTitle        lipgloss.Style
	CardDesc         lipgloss.Style
	CardTitleFocused lipgloss.Style
	CardDescFocused  lipgloss.Style
}

// DarkPalette returns the default dark palette.
func DarkPalette() Palette {
	return Palette{
		Name: Dark,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),

		FilterActive: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("12")).
			Padding(0, 1),
		FilterInactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Padding(0, 1),

		CardTitle:        lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		CardDesc:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		CardTitleFocused: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		CardDescFocused:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	}
}

// LightPalette returns the light palette.
func LightPalette() Palette {
	return Palette{
		Name: Light,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),

		FilterActive: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("4")).
			Padding(0, 1),
		FilterInactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1),

		CardTitle:        lipgloss.NewStyle().Foreground(lipgloss.Color("0")),
		CardDesc:         lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		CardTitleFocused: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		CardDescFocused:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

// PaletteByName returns the palette for the given theme name.
// Unknown names fall back to the dark palette.
func PaletteByName(name string) Palette {
	switch name {
	case Light:
		return LightPalette()
	default:
		return DarkPalette()
	}
}

// IsValid reports whether name is a known theme name.
func IsValid(name string) bool {
	return name == Dark || name == Light
}
