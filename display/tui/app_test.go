package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/syswatch/engine"
	"gitlab.com/tinyland/lab/syswatch/telemetry"
)

func newTestModel(t *testing.T) (Model, *telemetry.MockProvider) {
	t.Helper()

	provider := telemetry.MockHostData()
	session := engine.NewSession(engine.Options{
		Provider:     provider,
		Actions:      provider,
		BaseInterval: time.Second,
	})

	m := NewModel(Options{
		Session:    session,
		ShowSystem: true,
		ShowDisks:  true,
		ShowCharts: true,
	})

	// Size the window and run the first refresh.
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = update(t, m, tickMsg{seq: m.tickSeq, at: time.Now()})
	return m, provider
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestFirstTickPopulatesView(t *testing.T) {
	m, _ := newTestModel(t)

	if len(m.view.Records) != 5 {
		t.Fatalf("view has %d records, want 5", len(m.view.Records))
	}
	if !strings.Contains(m.View(), "chrome") {
		t.Error("rendered view does not contain a process name")
	}
}

func TestStaleTickIsIgnored(t *testing.T) {
	m, provider := newTestModel(t)
	provider.ProcessList = provider.ProcessList[:1]

	m = update(t, m, tickMsg{seq: m.tickSeq - 1, at: time.Now().Add(2 * time.Second)})
	if len(m.view.Records) != 5 {
		t.Errorf("stale tick refreshed the view: %d records", len(m.view.Records))
	}
}

func TestTabCycling(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.activeTab != TabSystem {
		t.Errorf("after tab, active = %v, want TabSystem", m.activeTab)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.activeTab != TabDisks {
		t.Errorf("after tab tab, active = %v, want TabDisks", m.activeTab)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.activeTab != TabProcesses {
		t.Errorf("tab cycling did not wrap, active = %v", m.activeTab)
	}
}

func TestHiddenTabsAreSkipped(t *testing.T) {
	provider := telemetry.MockHostData()
	session := engine.NewSession(engine.Options{Provider: provider, BaseInterval: time.Second})
	m := NewModel(Options{Session: session})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.activeTab != TabProcesses {
		t.Errorf("lone tab cycled to %v", m.activeTab)
	}
	m = update(t, m, keyRune('2'))
	if m.activeTab != TabProcesses {
		t.Errorf("hidden tab reachable by jump key: %v", m.activeTab)
	}
}

func TestSortKeyToggling(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, keyRune('c'))
	if m.view.SortKey != engine.SortCPU || !m.view.Descending {
		t.Fatalf("after c, sort = %v desc=%v, want cpu descending", m.view.SortKey, m.view.Descending)
	}

	// Busiest process first.
	first := m.view.Records[m.view.Order[0]]
	if first.Name != "chrome" {
		t.Errorf("top row = %q, want chrome", first.Name)
	}

	m = update(t, m, keyRune('c'))
	if m.view.Descending {
		t.Error("second press of c did not flip direction")
	}
}

func TestFilterInputNarrowsTable(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, keyRune('/'))
	if !m.filterActive {
		t.Fatal("/ did not activate the filter input")
	}

	for _, r := range "chrome" {
		m = update(t, m, keyRune(r))
	}
	if len(m.view.Order) != 1 {
		t.Fatalf("filter left %d rows, want 1", len(m.view.Order))
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.filterActive {
		t.Error("esc did not leave filter mode")
	}
	if m.view.Filter != "chrome" {
		t.Errorf("filter text lost on esc: %q", m.view.Filter)
	}
}

func TestSelectionMovement(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, keyRune('j'))
	if !m.view.HasSelection {
		t.Fatal("j did not select a row")
	}
	firstPID := m.view.Records[m.view.Order[0]].PID
	if m.view.SelectedPID != firstPID {
		t.Errorf("first j selected pid %d, want top row %d", m.view.SelectedPID, firstPID)
	}

	m = update(t, m, keyRune('j'))
	secondPID := m.view.Records[m.view.Order[1]].PID
	if m.view.SelectedPID != secondPID {
		t.Errorf("second j selected pid %d, want %d", m.view.SelectedPID, secondPID)
	}

	m = update(t, m, keyRune('k'))
	if m.view.SelectedPID != firstPID {
		t.Errorf("k selected pid %d, want %d", m.view.SelectedPID, firstPID)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view.HasSelection {
		t.Error("esc did not clear the selection")
	}
}

func TestDetailsShowNoDataForVanishedSelection(t *testing.T) {
	m, provider := newTestModel(t)

	m = update(t, m, keyRune('j'))
	pid := m.view.SelectedPID

	// Drop the selected process and refresh.
	kept := provider.ProcessList[:0:0]
	for _, p := range provider.ProcessList {
		if p.PID != pid {
			kept = append(kept, p)
		}
	}
	provider.ProcessList = kept

	m = update(t, m, keyRune('r'))
	m = update(t, m, tickMsg{seq: m.tickSeq, at: time.Now()})

	if !m.view.HasSelection {
		t.Fatal("selection dropped when pid vanished")
	}
	if m.view.SelectedPresent {
		t.Fatal("vanished pid still resolves")
	}
	if !strings.Contains(m.View(), "no data") {
		t.Error("details pane missing the no-data state")
	}
}

func TestFocusChangesCadence(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, tea.BlurMsg{})
	if m.view.EffectiveInterval != 5*time.Second {
		t.Errorf("blurred interval = %v, want 5s", m.view.EffectiveInterval)
	}

	m = update(t, m, tea.FocusMsg{})
	if m.view.EffectiveInterval != time.Second {
		t.Errorf("focused interval = %v, want 1s", m.view.EffectiveInterval)
	}
}

func TestEnergySavingToggle(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, keyRune('e'))
	if !m.view.EnergySaving || m.view.EffectiveInterval != 2*time.Second {
		t.Errorf("after e: saving=%v interval=%v, want on/2s", m.view.EnergySaving, m.view.EffectiveInterval)
	}

	m = update(t, m, keyRune('e'))
	if m.view.EnergySaving {
		t.Error("second e did not toggle energy saving off")
	}
}

func TestIntervalKeysClamp(t *testing.T) {
	m, _ := newTestModel(t)

	for i := 0; i < 10; i++ {
		m = update(t, m, keyRune('-'))
	}
	if m.view.BaseInterval != minInterval {
		t.Errorf("interval floor = %v, want %v", m.view.BaseInterval, minInterval)
	}

	for i := 0; i < 300; i++ {
		m = update(t, m, keyRune('+'))
	}
	if m.view.BaseInterval != maxInterval {
		t.Errorf("interval ceiling = %v, want %v", m.view.BaseInterval, maxInterval)
	}
}

func TestTerminateSelected(t *testing.T) {
	m, provider := newTestModel(t)

	m = update(t, m, keyRune('j'))
	pid := m.view.SelectedPID

	m = update(t, m, keyRune('K'))
	if len(provider.Terminated) != 1 || provider.Terminated[0] != pid {
		t.Errorf("terminated pids = %v, want [%d]", provider.Terminated, pid)
	}
	if !strings.Contains(m.status, "terminated") {
		t.Errorf("status = %q, want terminate confirmation", m.status)
	}
}

func TestTerminateWithoutSelection(t *testing.T) {
	m, provider := newTestModel(t)

	m = update(t, m, keyRune('K'))
	if len(provider.Terminated) != 0 {
		t.Errorf("terminate dispatched without selection: %v", provider.Terminated)
	}
	if !strings.Contains(m.status, "no process selected") {
		t.Errorf("status = %q, want no-selection notice", m.status)
	}
}

func TestSystemTabRendersGauges(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, keyRune('2'))
	view := m.View()
	for _, want := range []string{"CPU", "Memory", "uptime", "History"} {
		if !strings.Contains(view, want) {
			t.Errorf("system tab missing %q", want)
		}
	}
}

func TestDisksTabRendersUsage(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, keyRune('3'))
	view := m.View()
	if !strings.Contains(view, "nvme0n1p2") && !strings.Contains(view, "/dev/nvme") {
		t.Errorf("disks tab missing disk name:\n%s", view)
	}
	if !strings.Contains(view, "SSD") {
		t.Error("disks tab missing disk kind")
	}
}
