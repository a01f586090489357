package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/term"

	"gitlab.com/tinyland/lab/syswatch/display/widgets"
	"gitlab.com/tinyland/lab/syswatch/engine"
	"gitlab.com/tinyland/lab/syswatch/internal/format"
)

// snapshotWidth resolves the output width for -once mode: the terminal width
// when stdout is a TTY, a fixed width for pipes.
func snapshotWidth() int {
	fd := os.Stdout.Fd()
	if !term.IsTerminal(fd) {
		return 100
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w < 40 {
		return 100
	}
	return w
}

// renderSnapshot formats one engine view as plain text for -once mode: host
// totals, disks, and the full ranked process table.
func renderSnapshot(v engine.View, width int) string {
	var sb strings.Builder

	t := v.Totals
	fmt.Fprintf(&sb, "cpu %s · memory %s / %s · uptime %s\n",
		format.Percent(t.GlobalCPUPercent),
		format.Bytes(t.UsedMemoryBytes),
		format.Bytes(t.TotalMemoryBytes),
		format.Uptime(t.UptimeSeconds),
	)

	for _, d := range v.Disks {
		fmt.Fprintf(&sb, "%s (%s, %s): %s of %s used (%s)\n",
			d.Name, d.Kind, d.Filesystem,
			format.Bytes(d.UsedBytes),
			format.Bytes(d.TotalBytes),
			format.Percent(float64(d.UsagePercent)),
		)
	}
	sb.WriteString("\n")

	rows := make([][]string, 0, len(v.Order))
	for _, idx := range v.Order {
		rec := v.Records[idx]
		rows = append(rows, []string{
			rec.Name,
			strconv.FormatUint(uint64(rec.PID), 10),
			format.Percent(float64(rec.CPUUsage)),
			format.Megabytes(rec.MemoryUsage),
			rec.Status,
			rec.Owner,
		})
	}

	sb.WriteString(widgets.Table(widgets.TableConfig{
		Columns: []widgets.Column{
			{Title: "Name", Flex: true},
			{Title: "PID", Width: 7, Align: widgets.AlignRight},
			{Title: "CPU", Width: 8, Align: widgets.AlignRight},
			{Title: "Memory", Width: 11, Align: widgets.AlignRight},
			{Title: "Status", Width: 10},
			{Title: "User", Width: 12},
		},
		Rows:        rows,
		MaxWidth:    width,
		SelectedRow: -1,
	}))
	sb.WriteString("\n")

	return sb.String()
}
