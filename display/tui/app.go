// Package tui implements the interactive dashboard: a tabbed Bubbletea
// application showing the live process table, aggregate system figures, and
// disk usage, driven by an engine.Session.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/syswatch/engine"
)

// Tab identifies which tab is currently active.
type Tab int

const (
	TabProcesses Tab = iota
	TabSystem
	TabDisks
)

// tabNames maps each Tab value to its display label.
var tabNames = map[Tab]string{
	TabProcesses: "Processes",
	TabSystem:    "System",
	TabDisks:     "Disks",
}

// Refresh interval bounds for the +/- keys, matching the config limits.
const (
	minInterval  = 100 * time.Millisecond
	maxInterval  = time.Minute
	intervalStep = 250 * time.Millisecond
)

// statusTTL is how long a transient status message stays in the footer.
const statusTTL = 5 * time.Second

// tickMsg drives the adaptive refresh loop. The sequence number invalidates
// ticks scheduled before a cadence change (focus, energy saving, interval
// keys), so only one tick chain is ever live.
type tickMsg struct {
	seq int
	at  time.Time
}

// Options configures the dashboard model.
type Options struct {
	// Session is the engine driving the dashboard. Required.
	Session *engine.Session

	// Theme selects the color scheme. Zero value means the dark theme.
	Theme Theme

	// ShowSystem and ShowDisks control tab visibility; ShowCharts controls
	// the history sparklines on the system tab.
	ShowSystem bool
	ShowDisks  bool
	ShowCharts bool

	// Logger receives UI-level warnings. Nil means discard.
	Logger *slog.Logger
}

// Model is the top-level Bubbletea model for the dashboard.
type Model struct {
	session *engine.Session
	logger  *slog.Logger

	theme Theme
	keys  keyMap
	help  help.Model
	zones *zone.Manager

	filter       textinput.Model
	filterActive bool

	tabs      []Tab
	activeTab Tab

	view       engine.View
	showCharts bool
	scroll     int

	status   string
	statusAt time.Time

	tickSeq int
	width   int
	height  int
	ready   bool
}

// NewModel returns an initialized Model with the process tab active.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	theme := opts.Theme
	if theme.Name == "" {
		theme = DarkTheme()
	}

	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "filter by name"
	filter.CharLimit = 64

	tabs := []Tab{TabProcesses}
	if opts.ShowSystem {
		tabs = append(tabs, TabSystem)
	}
	if opts.ShowDisks {
		tabs = append(tabs, TabDisks)
	}

	m := Model{
		session:    opts.Session,
		logger:     logger,
		theme:      theme,
		keys:       defaultKeys,
		help:       help.New(),
		zones:      zone.New(),
		filter:     filter,
		tabs:       tabs,
		activeTab:  TabProcesses,
		showCharts: opts.ShowCharts,
	}
	m.filter.SetValue(opts.Session.Filter())
	m.syncView()
	return m
}

// Init implements tea.Model. It fires the first tick immediately; the
// session's scheduler decides whether a refresh is actually due.
func (m Model) Init() tea.Cmd {
	seq := m.tickSeq
	return func() tea.Msg {
		return tickMsg{seq: seq, at: time.Now()}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.seq != m.tickSeq {
			return m, nil
		}
		if m.session.Tick(context.Background(), msg.at) {
			m.syncView()
		}
		return m, m.scheduleTick()

	case tea.FocusMsg:
		m.session.SetFocused(true)
		m.syncView()
		return m, m.retick()

	case tea.BlurMsg:
		m.session.SetFocused(false)
		m.syncView()
		return m, m.retick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// scheduleTick continues the tick chain at the scheduler's current cadence.
func (m Model) scheduleTick() tea.Cmd {
	seq := m.tickSeq
	return tea.Tick(m.session.NextWake(time.Now()), func(t time.Time) tea.Msg {
		return tickMsg{seq: seq, at: t}
	})
}

// retick abandons the pending tick chain and starts a fresh one immediately,
// used after any cadence change so the new interval takes effect without
// waiting out the old one.
func (m *Model) retick() tea.Cmd {
	m.tickSeq++
	seq := m.tickSeq
	return func() tea.Msg {
		return tickMsg{seq: seq, at: time.Now()}
	}
}

// syncView pulls a fresh read snapshot from the session and clamps the table
// scroll offset to the new row count.
func (m *Model) syncView() {
	m.view = m.session.View()
	if max := len(m.view.Order) - 1; m.scroll > max {
		m.scroll = 0
	}
}

func (m *Model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusAt = time.Now()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filterActive {
		switch msg.String() {
		case "esc", "enter":
			m.filterActive = false
			m.filter.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.session.SetFilter(m.filter.Value())
		m.syncView()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextTab):
		m.cycleTab(1)
	case key.Matches(msg, m.keys.PrevTab):
		m.cycleTab(-1)
	case key.Matches(msg, m.keys.Tab1):
		m.jumpTab(TabProcesses)
	case key.Matches(msg, m.keys.Tab2):
		m.jumpTab(TabSystem)
	case key.Matches(msg, m.keys.Tab3):
		m.jumpTab(TabDisks)

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.ClearSel):
		m.session.ClearSelection()
		m.syncView()

	case key.Matches(msg, m.keys.SortName):
		m.setSort(engine.SortName)
	case key.Matches(msg, m.keys.SortCPU):
		m.setSort(engine.SortCPU)
	case key.Matches(msg, m.keys.SortMemory):
		m.setSort(engine.SortMemory)
	case key.Matches(msg, m.keys.SortStatus):
		m.setSort(engine.SortStatus)

	case key.Matches(msg, m.keys.Filter):
		m.filterActive = true
		return m, m.filter.Focus()

	case key.Matches(msg, m.keys.IntervalUp):
		m.adjustInterval(intervalStep)
		return m, m.retick()
	case key.Matches(msg, m.keys.IntervalDown):
		m.adjustInterval(-intervalStep)
		return m, m.retick()
	case key.Matches(msg, m.keys.EnergySaving):
		m.session.SetEnergySaving(!m.view.EnergySaving)
		m.syncView()
		if m.view.EnergySaving {
			m.setStatus("energy saving on")
		} else {
			m.setStatus("energy saving off")
		}
		return m, m.retick()
	case key.Matches(msg, m.keys.Refresh):
		m.session.ForceRefresh()
		return m, m.retick()

	case key.Matches(msg, m.keys.Export):
		m.exportNow()
	case key.Matches(msg, m.keys.Kill):
		m.terminateSelected()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveSelection(-1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.moveSelection(1)
		return m, nil
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.activeTab != TabProcesses {
		return m, nil
	}

	for i := range processColumns {
		if !processColumns[i].sortable {
			continue
		}
		if m.zones.Get(headerZoneID(i)).InBounds(msg) {
			m.setSort(processColumns[i].key)
			return m, nil
		}
	}

	start, end := m.rowWindow()
	for i := start; i < end; i++ {
		pid := m.view.Records[m.view.Order[i]].PID
		if m.zones.Get(rowZoneID(pid)).InBounds(msg) {
			m.session.Select(pid)
			m.syncView()
			return m, nil
		}
	}

	return m, nil
}

// cycleTab moves to the adjacent visible tab, wrapping around.
func (m *Model) cycleTab(delta int) {
	idx := 0
	for i, t := range m.tabs {
		if t == m.activeTab {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(m.tabs)) % len(m.tabs)
	m.activeTab = m.tabs[idx]
}

// jumpTab activates a tab directly if it is visible.
func (m *Model) jumpTab(tab Tab) {
	for _, t := range m.tabs {
		if t == tab {
			m.activeTab = tab
			return
		}
	}
}

func (m *Model) setSort(key engine.SortKey) {
	m.session.SetSortKey(key)
	m.syncView()
}

// moveSelection moves the selected pid up or down the displayed order. When
// nothing is selected, or the selected pid is no longer visible, movement
// starts from the top.
func (m *Model) moveSelection(delta int) {
	if len(m.view.Order) == 0 {
		return
	}

	idx := m.selectedRowIndex()
	if idx < 0 {
		idx = 0
	} else {
		idx += delta
		if idx < 0 {
			idx = 0
		}
		if idx > len(m.view.Order)-1 {
			idx = len(m.view.Order) - 1
		}
	}

	m.session.Select(m.view.Records[m.view.Order[idx]].PID)
	m.syncView()
	m.ensureVisible(idx)
}

// selectedRowIndex returns the display-order position of the selected pid,
// or -1 when nothing visible is selected.
func (m Model) selectedRowIndex() int {
	if !m.view.HasSelection {
		return -1
	}
	for i, rec := range m.view.Order {
		if m.view.Records[rec].PID == m.view.SelectedPID {
			return i
		}
	}
	return -1
}

// ensureVisible scrolls the table window so the given row index is on screen.
func (m *Model) ensureVisible(idx int) {
	rows := m.tableRows()
	if idx < m.scroll {
		m.scroll = idx
	}
	if idx >= m.scroll+rows {
		m.scroll = idx - rows + 1
	}
}

// rowWindow returns the half-open range of display-order indices currently
// on screen.
func (m Model) rowWindow() (int, int) {
	start := m.scroll
	if start < 0 {
		start = 0
	}
	end := start + m.tableRows()
	if end > len(m.view.Order) {
		end = len(m.view.Order)
	}
	return start, end
}

func (m *Model) adjustInterval(delta time.Duration) {
	next := m.view.BaseInterval + delta
	if next < minInterval {
		next = minInterval
	}
	if next > maxInterval {
		next = maxInterval
	}
	m.session.SetBaseInterval(next)
	m.syncView()
	m.setStatus("refresh interval %s", next)
}

func (m *Model) exportNow() {
	path, err := m.session.Export(time.Now())
	if err != nil {
		m.logger.Warn("export failed", slog.String("error", err.Error()))
		m.setStatus("export failed: %v", err)
		return
	}
	m.setStatus("exported %s", path)
}

func (m *Model) terminateSelected() {
	if !m.view.HasSelection {
		m.setStatus("no process selected")
		return
	}
	name := fmt.Sprintf("pid %d", m.view.SelectedPID)
	if m.view.SelectedPresent {
		name = m.view.Selected.Name
	}

	if err := m.session.Terminate(context.Background()); err != nil {
		m.setStatus("terminate %s failed: %v", name, err)
		return
	}
	m.session.ForceRefresh()
	m.setStatus("terminated %s", name)
}

// View implements tea.Model. The rendered frame is scanned by the zone
// manager so header and row click targets track their on-screen positions.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	frame := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderTabContent(),
		m.renderFooter(),
	)
	return m.zones.Scan(frame)
}

// renderHeader renders the tab bar and the current refresh cadence.
func (m Model) renderHeader() string {
	var tabs []string
	for _, t := range m.tabs {
		name := tabNames[t]
		if t == m.activeTab {
			tabs = append(tabs, m.theme.ActiveTab.Render(name))
		} else {
			tabs = append(tabs, m.theme.InactiveTab.Render(name))
		}
	}
	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	cadence := fmt.Sprintf("refresh %s", m.view.EffectiveInterval)
	if m.view.EnergySaving {
		cadence += " · energy saving"
	}
	if !m.view.Focused {
		cadence += " · background"
	}

	gap := m.width - lipgloss.Width(tabBar) - lipgloss.Width(cadence) - 1
	if gap < 1 {
		gap = 1
	}
	line := tabBar + lipgloss.NewStyle().Width(gap).Render("") + m.theme.Label.Render(cadence)

	return m.theme.Header.Width(m.width).Render(line)
}

// renderTabContent delegates to the active tab renderer.
func (m Model) renderTabContent() string {
	height := m.contentHeight()

	var content string
	switch m.activeTab {
	case TabSystem:
		content = m.renderSystemTab(height)
	case TabDisks:
		content = m.renderDisksTab(height)
	default:
		content = m.renderProcessesTab(height)
	}

	return lipgloss.NewStyle().Width(m.width).Height(height).Padding(0, 1).Render(content)
}

// renderFooter renders the transient status message and the help line.
func (m Model) renderFooter() string {
	var status string
	if m.status != "" && time.Since(m.statusAt) < statusTTL {
		status = m.theme.StatusLine.Render(m.status) + "\n"
	}
	return m.theme.Footer.Width(m.width).Render(status + m.help.View(m.keys))
}

// contentHeight is the vertical budget for the active tab body.
func (m Model) contentHeight() int {
	reserved := 4
	if m.help.ShowAll {
		reserved += 4
	}
	h := m.height - reserved
	if h < 3 {
		h = 3
	}
	return h
}

// tableRows is how many process rows fit in the current window, after the
// filter line, the table header, and the details pane.
func (m Model) tableRows() int {
	rows := m.contentHeight() - 2 - detailsHeight
	if rows < 1 {
		rows = 1
	}
	return rows
}
