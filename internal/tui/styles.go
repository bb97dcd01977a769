package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/weekendly/internal/plan"
)

// palette carries the colors a theme flavors the UI with. Themes are purely
// cosmetic; they never change scheduling behavior.
type palette struct {
	accent lipgloss.Color
	subtle lipgloss.Color
}

var themePalettes = map[plan.ThemeID]palette{
	plan.ThemeDefault:     {accent: lipgloss.Color("#5B8DEF"), subtle: lipgloss.Color("#A0AEC0")},
	plan.ThemeLazy:        {accent: lipgloss.Color("#B794F4"), subtle: lipgloss.Color("#9F9FB8")},
	plan.ThemeAdventurous: {accent: lipgloss.Color("#F7B801"), subtle: lipgloss.Color("#C0A868")},
	plan.ThemeFamily:      {accent: lipgloss.Color("#4CAF50"), subtle: lipgloss.Color("#8FBC94")},
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777"))
	columnStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

// themeStyle returns the accent style for the current theme.
func themeStyle(theme plan.ThemeID) lipgloss.Style {
	p, ok := themePalettes[theme]
	if !ok {
		p = themePalettes[plan.ThemeDefault]
	}
	return lipgloss.NewStyle().Foreground(p.accent).Bold(true)
}

// themeSubtleStyle returns the muted style for the current theme.
func themeSubtleStyle(theme plan.ThemeID) lipgloss.Style {
	p, ok := themePalettes[theme]
	if !ok {
		p = themePalettes[plan.ThemeDefault]
	}
	return lipgloss.NewStyle().Foreground(p.subtle)
}

// themeLabel is the human name shown for each theme in pickers.
func themeLabel(theme plan.ThemeID) string {
	switch theme {
	case plan.ThemeLazy:
		return "Lazy Weekend"
	case plan.ThemeAdventurous:
		return "Adventurous"
	case plan.ThemeFamily:
		return "Family"
	default:
		return "Default"
	}
}
