package tui

import (
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/syswatch/display/widgets"
)

// Theme is a complete color scheme for the dashboard, selectable at runtime
// through the display.theme config key.
type Theme struct {
	Name string

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Danger    lipgloss.Color
	Muted     lipgloss.Color

	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	Header      lipgloss.Style
	Footer      lipgloss.Style
	Title       lipgloss.Style
	TableHeader lipgloss.Style
	Row         lipgloss.Style
	SelectedRow lipgloss.Style
	Label       lipgloss.Style
	StatusLine  lipgloss.Style
}

// buildStyles derives the shared styles from the palette colors. Called once
// per theme constructor so every preset gets a consistent layout treatment.
func (t Theme) buildStyles() Theme {
	t.ActiveTab = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(t.Primary).
		Padding(0, 2)

	t.InactiveTab = lipgloss.NewStyle().
		Foreground(t.Muted).
		Padding(0, 2)

	t.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.Muted)

	t.Footer = lipgloss.NewStyle().
		Foreground(t.Muted).
		MarginTop(1)

	t.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Secondary)

	t.TableHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Secondary)

	t.Row = lipgloss.NewStyle()

	t.SelectedRow = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(t.Primary)

	t.Label = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.StatusLine = lipgloss.NewStyle().
		Foreground(t.Success)

	return t
}

// GaugeColors maps the theme palette onto gauge fill colors.
func (t Theme) GaugeColors() widgets.GaugeColors {
	return widgets.GaugeColors{
		OK:     t.Success,
		Warn:   t.Warning,
		Danger: t.Danger,
	}
}

// DarkTheme is the default dark palette.
func DarkTheme() Theme {
	return Theme{
		Name:      "dark",
		Primary:   lipgloss.Color("#7C3AED"),
		Secondary: lipgloss.Color("#06B6D4"),
		Success:   lipgloss.Color("#22C55E"),
		Warning:   lipgloss.Color("#EAB308"),
		Danger:    lipgloss.Color("#EF4444"),
		Muted:     lipgloss.Color("#6B7280"),
	}.buildStyles()
}

// NordTheme is an arctic palette based on the Nord color scheme.
func NordTheme() Theme {
	return Theme{
		Name:      "nord",
		Primary:   lipgloss.Color("#5E81AC"),
		Secondary: lipgloss.Color("#88C0D0"),
		Success:   lipgloss.Color("#A3BE8C"),
		Warning:   lipgloss.Color("#EBCB8B"),
		Danger:    lipgloss.Color("#BF616A"),
		Muted:     lipgloss.Color("#4C566A"),
	}.buildStyles()
}

// ThemeByName returns the named theme. Unknown names fall back to the dark
// theme so a stale config value never breaks startup.
func ThemeByName(name string) Theme {
	if name == "nord" {
		return NordTheme()
	}
	return DarkTheme()
}
