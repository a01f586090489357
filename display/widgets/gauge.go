package widgets

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Utilization thresholds at which a gauge changes color.
const (
	gaugeWarnAt   = 70.0
	gaugeDangerAt = 90.0
)

// GaugeColors holds the three fill colors of a gauge, selected by the
// utilization thresholds.
type GaugeColors struct {
	OK     lipgloss.Color
	Warn   lipgloss.Color
	Danger lipgloss.Color
}

// GaugeConfig controls the appearance of a horizontal bar gauge.
type GaugeConfig struct {
	// Width is the character width of the bar itself.
	Width int
	// Percent is the value from 0 to 100; out-of-range values are clamped.
	Percent float64
	// Label is optional text shown to the left of the bar.
	Label string
	// ShowPercent controls whether "XX%" is shown to the right.
	ShowPercent bool
	// Colors selects the fill palette. Zero-value fields fall back to the
	// default green/yellow/red.
	Colors GaugeColors
}

// fillColor picks the gauge fill color for the given utilization.
func fillColor(percent float64, c GaugeColors) lipgloss.Color {
	if c.OK == "" {
		c.OK = lipgloss.Color("#22C55E")
	}
	if c.Warn == "" {
		c.Warn = lipgloss.Color("#EAB308")
	}
	if c.Danger == "" {
		c.Danger = lipgloss.Color("#EF4444")
	}

	switch {
	case percent >= gaugeDangerAt:
		return c.Danger
	case percent >= gaugeWarnAt:
		return c.Warn
	default:
		return c.OK
	}
}

// Gauge renders a horizontal bar gauge with optional label and percentage.
// Format: [Label] ████████░░░░ [XX%]
func Gauge(cfg GaugeConfig) string {
	percent := math.Max(0, math.Min(100, cfg.Percent))

	width := cfg.Width
	if width <= 0 {
		width = 20
	}

	filled := int(math.Round(percent / 100.0 * float64(width)))
	bar := lipgloss.NewStyle().
		Foreground(fillColor(percent, cfg.Colors)).
		Render(strings.Repeat("█", filled)) +
		strings.Repeat("░", width-filled)

	var sb strings.Builder
	if cfg.Label != "" {
		sb.WriteString(cfg.Label)
		sb.WriteString(" ")
	}
	sb.WriteString(bar)
	if cfg.ShowPercent {
		sb.WriteString(fmt.Sprintf(" %5.1f%%", percent))
	}
	return sb.String()
}

// MiniGauge renders a compact bar with no label or percentage text, used
// inside table cells.
func MiniGauge(percent float64, width int, colors GaugeColors) string {
	return Gauge(GaugeConfig{
		Width:   width,
		Percent: percent,
		Colors:  colors,
	})
}
