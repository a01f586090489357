package tui

import (
	"fmt"
	"strconv"
	"strings"

	"gitlab.com/tinyland/lab/syswatch/display/widgets"
	"gitlab.com/tinyland/lab/syswatch/engine"
	"gitlab.com/tinyland/lab/syswatch/internal/format"
)

// detailsHeight is the fixed height of the selection details pane.
const detailsHeight = 4

// processColumns defines the process table layout. Sortable columns double
// as click targets for the column-sort rule.
var processColumns = []struct {
	title    string
	key      engine.SortKey
	sortable bool
	width    int
	align    widgets.Alignment
	flex     bool
}{
	{title: "Name", key: engine.SortName, sortable: true, flex: true},
	{title: "PID", width: 7, align: widgets.AlignRight},
	{title: "CPU", key: engine.SortCPU, sortable: true, width: 8, align: widgets.AlignRight},
	{title: "Memory", key: engine.SortMemory, sortable: true, width: 11, align: widgets.AlignRight},
	{title: "Status", key: engine.SortStatus, sortable: true, width: 10},
	{title: "User", width: 12},
}

func headerZoneID(col int) string {
	return "hdr/" + strconv.Itoa(col)
}

func rowZoneID(pid uint32) string {
	return "row/" + strconv.FormatUint(uint64(pid), 10)
}

func (m Model) renderProcessesTab(height int) string {
	return strings.Join([]string{
		m.renderFilterLine(),
		m.renderProcessTable(),
		m.renderDetails(),
	}, "\n")
}

// renderFilterLine shows the filter input while editing, or a one-line
// summary of the table state otherwise.
func (m Model) renderFilterLine() string {
	if m.filterActive {
		return m.filter.View()
	}
	if f := m.view.Filter; f != "" {
		return m.theme.Label.Render(fmt.Sprintf("filter %q · %d match(es) · / to edit", f, len(m.view.Order)))
	}
	return m.theme.Label.Render(fmt.Sprintf("%d processes · / to filter", len(m.view.Order)))
}

func (m Model) renderProcessTable() string {
	start, end := m.rowWindow()

	rows := make([][]string, 0, end-start)
	pids := make([]uint32, 0, end-start)
	for i := start; i < end; i++ {
		rec := m.view.Records[m.view.Order[i]]
		rows = append(rows, []string{
			rec.Name,
			strconv.FormatUint(uint64(rec.PID), 10),
			format.Percent(float64(rec.CPUUsage)),
			format.Megabytes(rec.MemoryUsage),
			rec.Status,
			rec.Owner,
		})
		pids = append(pids, rec.PID)
	}

	columns := make([]widgets.Column, len(processColumns))
	for i, col := range processColumns {
		title := col.title
		if col.sortable && col.key == m.view.SortKey {
			if m.view.Descending {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		columns[i] = widgets.Column{Title: title, Width: col.width, Align: col.align, Flex: col.flex}
	}

	selected := -1
	if idx := m.selectedRowIndex(); idx >= start && idx < end {
		selected = idx - start
	}

	table := widgets.Table(widgets.TableConfig{
		Columns:       columns,
		Rows:          rows,
		MaxWidth:      m.width - 2,
		SelectedRow:   selected,
		HeaderStyle:   m.theme.TableHeader,
		RowStyle:      m.theme.Row,
		SelectedStyle: m.theme.SelectedRow,
		HeaderCell: func(col int, cell string) string {
			if !processColumns[col].sortable {
				return cell
			}
			return m.zones.Mark(headerZoneID(col), cell)
		},
		Row: func(row int, line string) string {
			return m.zones.Mark(rowZoneID(pids[row]), line)
		},
	})

	if len(rows) == 0 {
		table += "\n" + m.theme.Label.Render("no matching processes")
	}
	return table
}

// renderDetails renders the selection pane. A selection whose pid is not in
// the current snapshot keeps its slot but shows an explicit no-data state.
func (m Model) renderDetails() string {
	title := m.theme.Title.Render("Details")

	var lines []string
	switch {
	case !m.view.HasSelection:
		lines = []string{m.theme.Label.Render("no process selected · click a row or press j/k")}
	case !m.view.SelectedPresent:
		lines = []string{m.theme.Label.Render(fmt.Sprintf("pid %d · no data (process exited or was filtered out)", m.view.SelectedPID))}
	default:
		sel := m.view.Selected
		owner := sel.Owner
		if owner == "" {
			owner = "unknown"
		}
		lines = []string{
			fmt.Sprintf("%s (pid %d) · %s · %s", sel.Name, sel.PID, sel.Status, owner),
			fmt.Sprintf("cpu %s · memory %s", format.Percent(float64(sel.CPUUsage)), format.Bytes(sel.MemoryUsage)),
		}
		if sel.CommandLine != "" {
			lines = append(lines, m.theme.Label.Render(format.TruncateWithEllipsis(sel.CommandLine, m.width-4)))
		}
	}

	for len(lines) < detailsHeight-1 {
		lines = append(lines, "")
	}
	return title + "\n" + strings.Join(lines, "\n")
}

func (m Model) renderSystemTab(height int) string {
	t := m.view.Totals

	var memPercent float64
	if t.TotalMemoryBytes > 0 {
		memPercent = float64(t.UsedMemoryBytes) / float64(t.TotalMemoryBytes) * 100.0
	}

	lines := []string{
		m.theme.Title.Render("System"),
		widgets.Gauge(widgets.GaugeConfig{
			Width:       30,
			Percent:     t.GlobalCPUPercent,
			Label:       "CPU   ",
			ShowPercent: true,
			Colors:      m.theme.GaugeColors(),
		}),
		widgets.Gauge(widgets.GaugeConfig{
			Width:       30,
			Percent:     memPercent,
			Label:       "Memory",
			ShowPercent: true,
			Colors:      m.theme.GaugeColors(),
		}),
		m.theme.Label.Render(fmt.Sprintf("memory %s / %s", format.Bytes(t.UsedMemoryBytes), format.Bytes(t.TotalMemoryBytes))),
		m.theme.Label.Render(fmt.Sprintf("uptime %s · %d processes", format.Uptime(t.UptimeSeconds), len(m.view.Records))),
	}

	if m.showCharts && len(m.view.History) > 0 {
		cpu := make([]float64, len(m.view.History))
		mem := make([]float64, len(m.view.History))
		for i, s := range m.view.History {
			cpu[i] = s.CPUPercent
			mem[i] = s.MemoryMB
		}

		chartWidth := m.width - 12
		if chartWidth > engine.DefaultHistoryCapacity {
			chartWidth = engine.DefaultHistoryCapacity
		}
		if chartWidth < 10 {
			chartWidth = 10
		}

		lines = append(lines,
			"",
			m.theme.Title.Render("History"),
			"CPU %  "+widgets.PercentSparkline(cpu, chartWidth, m.theme.Secondary),
			"Mem MB "+widgets.RangedSparkline(mem, chartWidth, m.theme.Primary),
		)
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderDisksTab(height int) string {
	if len(m.view.Disks) == 0 {
		return m.theme.Label.Render("no disk information yet")
	}

	lines := []string{m.theme.Title.Render("Disks")}
	for _, d := range m.view.Disks {
		lines = append(lines,
			"",
			fmt.Sprintf("%s %s", d.Name, m.theme.Label.Render(fmt.Sprintf("(%s, %s)", d.Kind, d.Filesystem))),
			fmt.Sprintf("%s %s of %s used (%s)",
				widgets.MiniGauge(float64(d.UsagePercent), 24, m.theme.GaugeColors()),
				format.Bytes(d.UsedBytes),
				format.Bytes(d.TotalBytes),
				format.Percent(float64(d.UsagePercent)),
			),
		)
	}
	return strings.Join(lines, "\n")
}
