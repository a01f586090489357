// Package widgets provides the reusable terminal rendering primitives of the
// dashboard: sparkline charts, bar gauges, and the process table.
package widgets

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sparkBlocks contains 8 unicode block characters for sparkline rendering,
// ordered from lowest to highest.
var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// SparklineConfig controls the appearance of a sparkline chart.
type SparklineConfig struct {
	// Data points to render, oldest first.
	Data []float64
	// Width is the number of characters to render. If 0, uses len(Data).
	// Older points are dropped when Data exceeds Width; the line is
	// left-padded with spaces when Data is shorter, so a filling history
	// window grows rightward without jitter.
	Width int
	// Min and Max bound the value scale. If Min == Max the scale is derived
	// from the data itself.
	Min float64
	Max float64
	// Color is applied to the rendered blocks when set.
	Color lipgloss.Color
}

// Sparkline renders a unicode sparkline chart from the given configuration.
func Sparkline(cfg SparklineConfig) string {
	if len(cfg.Data) == 0 {
		return ""
	}

	data := cfg.Data
	width := cfg.Width
	if width <= 0 {
		width = len(data)
	}
	if width < len(data) {
		data = data[len(data)-width:]
	}

	lo, hi := cfg.Min, cfg.Max
	if lo == hi {
		lo, hi = data[0], data[0]
		for _, v := range data {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}

	runes := make([]rune, 0, len(data))
	for _, v := range data {
		if lo == hi {
			runes = append(runes, sparkBlocks[len(sparkBlocks)/2])
			continue
		}
		normalized := math.Max(0, math.Min(1, (v-lo)/(hi-lo)))
		idx := int(normalized * float64(len(sparkBlocks)-1))
		runes = append(runes, sparkBlocks[idx])
	}

	line := string(runes)
	if width > len(data) {
		line = strings.Repeat(" ", width-len(data)) + line
	}

	if cfg.Color != "" {
		line = lipgloss.NewStyle().Foreground(cfg.Color).Render(line)
	}
	return line
}

// PercentSparkline renders percentage data on a fixed 0-100 scale so the
// chart height stays comparable across refreshes.
func PercentSparkline(data []float64, width int, color lipgloss.Color) string {
	return Sparkline(SparklineConfig{
		Data:  data,
		Width: width,
		Min:   0,
		Max:   100,
		Color: color,
	})
}

// RangedSparkline renders an auto-scaled sparkline bracketed by its min and
// max values. Format: "min ▁▂▃▄▅▆▇█ max".
func RangedSparkline(data []float64, width int, color lipgloss.Color) string {
	if len(data) == 0 {
		return ""
	}

	lo, hi := data[0], data[0]
	for _, v := range data {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	line := Sparkline(SparklineConfig{Data: data, Width: width, Color: color})
	return fmt.Sprintf("%.0f %s %.0f", lo, line, hi)
}
