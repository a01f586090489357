// Package format provides shared string and number formatting utilities.
package format

import (
	"fmt"
	"time"
)

// Bytes renders a byte count with a binary-unit suffix.
// Returns strings like "512 B", "42.0 MB", "1.5 GB".
func Bytes(n uint64) string {
	const (
		kib = 1 << 10
		mib = 1 << 20
		gib = 1 << 30
		tib = 1 << 40
	)

	switch {
	case n >= tib:
		return fmt.Sprintf("%.1f TB", float64(n)/tib)
	case n >= gib:
		return fmt.Sprintf("%.1f GB", float64(n)/gib)
	case n >= mib:
		return fmt.Sprintf("%.1f MB", float64(n)/mib)
	case n >= kib:
		return fmt.Sprintf("%.1f KB", float64(n)/kib)
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// Megabytes renders a byte count as a fixed "X.X MB" figure, the unit the
// process table uses for every row.
func Megabytes(n uint64) string {
	return fmt.Sprintf("%.1f MB", float64(n)/1024.0/1024.0)
}

// Percent renders a percentage with one decimal place.
func Percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// Uptime renders a second count as a concise age string.
// Returns strings like "45s", "5m 30s", "2h 15m", "3d 4h".
func Uptime(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second))
	if d < 0 {
		d = 0
	}

	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// TruncateWithEllipsis truncates a string to maxWidth runes, appending "..."
// if the string exceeds the limit. If maxWidth is less than 4, the string
// is hard-truncated without an ellipsis suffix.
func TruncateWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= maxWidth {
		return s
	}

	if maxWidth < 4 {
		return string(runes[:maxWidth])
	}

	return string(runes[:maxWidth-3]) + "..."
}
