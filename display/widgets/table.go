package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/syswatch/internal/format"
)

// Alignment controls text alignment within a table column.
type Alignment int

const (
	// AlignLeft aligns text to the left (default).
	AlignLeft Alignment = iota
	// AlignRight aligns text to the right.
	AlignRight
)

// Column defines a single table column.
type Column struct {
	// Title is the header text.
	Title string
	// Width is the fixed character width. If 0, auto-calculated from content.
	Width int
	// Align controls text alignment within the column.
	Align Alignment
	// Flex marks the column that absorbs leftover width. At most one column
	// should be flexible.
	Flex bool
}

// TableConfig holds the configuration for rendering a table.
type TableConfig struct {
	// Columns defines the table structure.
	Columns []Column
	// Rows is the table data. Each row is a slice of cell strings.
	Rows [][]string
	// MaxWidth is the total table width budget. The flex column shrinks or
	// grows to fit it.
	MaxWidth int
	// SelectedRow highlights one row with SelectedStyle. Negative means no
	// selection.
	SelectedRow int
	// HeaderStyle is the lipgloss style for header cells.
	HeaderStyle lipgloss.Style
	// RowStyle is the lipgloss style for data rows.
	RowStyle lipgloss.Style
	// SelectedStyle is the lipgloss style for the selected row.
	SelectedStyle lipgloss.Style
	// HeaderCell, when set, post-processes each styled header cell. Used to
	// mark header cells as mouse click targets.
	HeaderCell func(col int, cell string) string
	// Row, when set, post-processes each styled data row line. Used to mark
	// rows as mouse click targets.
	Row func(row int, line string) string
}

const columnSeparator = "  "

// Table renders a fixed-layout text table. Every row is padded to the full
// table width so row styles and mouse zones cover the whole line.
func Table(cfg TableConfig) string {
	if len(cfg.Columns) == 0 {
		return ""
	}

	widths := columnWidths(cfg.Columns, cfg.Rows, cfg.MaxWidth)

	var lines []string

	headerCells := make([]string, len(cfg.Columns))
	for i, col := range cfg.Columns {
		cell := cfg.HeaderStyle.Render(pad(col.Title, widths[i], AlignLeft))
		if cfg.HeaderCell != nil {
			cell = cfg.HeaderCell(i, cell)
		}
		headerCells[i] = cell
	}
	lines = append(lines, strings.Join(headerCells, columnSeparator))

	for rowIdx, row := range cfg.Rows {
		cells := make([]string, len(cfg.Columns))
		for i := range cfg.Columns {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = pad(cell, widths[i], cfg.Columns[i].Align)
		}

		style := cfg.RowStyle
		if rowIdx == cfg.SelectedRow {
			style = cfg.SelectedStyle
		}
		line := style.Render(strings.Join(cells, columnSeparator))
		if cfg.Row != nil {
			line = cfg.Row(rowIdx, line)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// columnWidths resolves the final width of every column: fixed widths are
// kept, zero widths are sized to content, and the flex column absorbs
// whatever budget remains.
func columnWidths(cols []Column, rows [][]string, maxWidth int) []int {
	widths := make([]int, len(cols))
	flexIdx := -1

	for i, col := range cols {
		if col.Flex {
			flexIdx = i
		}
		widths[i] = col.Width
		if widths[i] == 0 {
			widths[i] = len([]rune(col.Title))
			for _, row := range rows {
				if i < len(row) && len([]rune(row[i])) > widths[i] {
					widths[i] = len([]rune(row[i]))
				}
			}
		}
	}

	if maxWidth <= 0 || flexIdx < 0 {
		return widths
	}

	fixed := columnSeparatorTotal(len(cols))
	for i, w := range widths {
		if i != flexIdx {
			fixed += w
		}
	}

	flex := maxWidth - fixed
	if flex < 4 {
		flex = 4
	}
	widths[flexIdx] = flex
	return widths
}

func columnSeparatorTotal(cols int) int {
	if cols < 2 {
		return 0
	}
	return (cols - 1) * len(columnSeparator)
}

// pad pads or truncates a cell to the given width with the given alignment.
func pad(s string, width int, align Alignment) string {
	if width <= 0 {
		return ""
	}

	s = format.TruncateWithEllipsis(s, width)
	gap := width - len([]rune(s))
	if gap <= 0 {
		return s
	}

	if align == AlignRight {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}
