package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/syswatch/telemetry"
)

type fakeWriter struct {
	records []ProcessRecord
	path    string
	err     error
}

func (w *fakeWriter) WriteSnapshot(records []ProcessRecord, now time.Time) (string, error) {
	w.records = append([]ProcessRecord(nil), records...)
	return w.path, w.err
}

func newTestSession(t *testing.T, mock *telemetry.MockProvider) *Session {
	t.Helper()
	return NewSession(Options{
		Provider:     mock,
		Actions:      mock,
		BaseInterval: time.Second,
	})
}

func TestTickRespectsGate(t *testing.T) {
	mock := telemetry.MockHostData()
	s := newTestSession(t, mock)
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	// The first tick refreshes immediately.
	if !s.Tick(ctx, start) {
		t.Fatal("first tick did not refresh")
	}
	if s.Tick(ctx, start.Add(200*time.Millisecond)) {
		t.Error("tick refreshed before the interval elapsed")
	}
	if !s.Tick(ctx, start.Add(time.Second)) {
		t.Error("tick did not refresh once due")
	}
}

func TestTickPopulatesView(t *testing.T) {
	mock := telemetry.MockHostData()
	s := newTestSession(t, mock)
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s.Tick(context.Background(), start)
	v := s.View()

	if len(v.Records) != len(mock.ProcessList) {
		t.Errorf("Records = %d, want %d", len(v.Records), len(mock.ProcessList))
	}
	if len(v.Order) != len(v.Records) {
		t.Errorf("Order length %d does not match Records %d", len(v.Order), len(v.Records))
	}
	if len(v.History) != 1 {
		t.Errorf("History = %d samples after one tick, want 1", len(v.History))
	}
	if v.Totals.TotalMemoryBytes != mock.Mem.TotalBytes {
		t.Errorf("TotalMemoryBytes = %d, want %d", v.Totals.TotalMemoryBytes, mock.Mem.TotalBytes)
	}
	// The first tick is overdue by far more than 2x base, so disks load too.
	if len(v.Disks) != len(mock.DiskList) {
		t.Errorf("Disks = %d, want %d", len(v.Disks), len(mock.DiskList))
	}
}

func TestProviderFailureYieldsEmptySnapshot(t *testing.T) {
	mock := telemetry.MockHostData()
	mock.Err = errors.New("provider down")
	s := newTestSession(t, mock)

	if !s.Tick(context.Background(), time.Now()) {
		t.Fatal("tick declined; provider failure must still count as a refresh")
	}

	v := s.View()
	if len(v.Records) != 0 {
		t.Errorf("Records = %d, want empty snapshot on provider failure", len(v.Records))
	}
	if len(v.Order) != 0 {
		t.Errorf("Order = %d, want empty", len(v.Order))
	}
}

func TestSetFilterReingestsImmediately(t *testing.T) {
	mock := telemetry.MockHostData()
	s := newTestSession(t, mock)
	s.Tick(context.Background(), time.Now())

	s.SetFilter("chrome")
	v := s.View()
	if len(v.Records) != 1 || v.Records[0].Name != "chrome" {
		t.Errorf("filter did not narrow the cache between refreshes: %+v", v.Records)
	}

	s.SetFilter("")
	if got := len(s.View().Records); got != len(mock.ProcessList) {
		t.Errorf("clearing the filter left %d records, want %d", got, len(mock.ProcessList))
	}
}

func TestSetSortKeyTogglesAndReorders(t *testing.T) {
	mock := telemetry.MockHostData()
	s := newTestSession(t, mock)
	s.Tick(context.Background(), time.Now())

	s.SetSortKey(SortCPU)
	v := s.View()
	if v.SortKey != SortCPU || !v.Descending {
		t.Fatalf("first cpu selection: key=%v desc=%v, want cpu descending", v.SortKey, v.Descending)
	}
	top := v.Records[v.Order[0]]
	if top.Name != "chrome" {
		t.Errorf("busiest process not first after cpu sort: %q", top.Name)
	}

	s.SetSortKey(SortCPU)
	if s.View().Descending {
		t.Error("second selection of the same key did not flip direction")
	}
}

func TestSelectionSurvivesRefreshAndReportsAbsence(t *testing.T) {
	mock := telemetry.MockHostData()
	s := newTestSession(t, mock)
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	s.Tick(ctx, start)
	s.Select(742)

	if v := s.View(); !v.SelectedPresent || v.Selected.Name != "chrome" {
		t.Fatalf("selected record not resolved: %+v", v.Selected)
	}

	// pid 742 exits before the next refresh.
	mock.ProcessList = mock.ProcessList[:1]
	s.Tick(ctx, start.Add(time.Second))

	v := s.View()
	if !v.HasSelection || v.SelectedPID != 742 {
		t.Error("selection was cleared by a refresh in which the pid is absent")
	}
	if v.SelectedPresent {
		t.Error("absent pid reported as present; detail view would show stale data")
	}
}

func TestForceRefreshOverridesGate(t *testing.T) {
	mock := telemetry.MockHostData()
	s := newTestSession(t, mock)
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	s.Tick(ctx, start)
	if s.Tick(ctx, start.Add(100*time.Millisecond)) {
		t.Fatal("gate should be closed this soon after a refresh")
	}

	s.ForceRefresh()
	if !s.Tick(ctx, start.Add(200*time.Millisecond)) {
		t.Error("ForceRefresh did not open the gate")
	}
}

func TestHistoryAccumulatesAcrossTicks(t *testing.T) {
	mock := telemetry.MockHostData()
	s := newTestSession(t, mock)
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		s.Tick(ctx, start.Add(time.Duration(i)*time.Second))
	}
	if got := len(s.View().History); got != 5 {
		t.Errorf("History = %d samples after 5 refreshes, want 5", got)
	}
}

func TestExportPassesCurrentSnapshot(t *testing.T) {
	mock := telemetry.MockHostData()
	w := &fakeWriter{path: "processes_20250601_120000.json"}
	s := NewSession(Options{
		Provider:     mock,
		Exporter:     w,
		BaseInterval: time.Second,
	})
	s.Tick(context.Background(), time.Now())

	path, err := s.Export(time.Now())
	if err != nil {
		t.Fatalf("Export() = %v", err)
	}
	if path != w.path {
		t.Errorf("path = %q, want %q", path, w.path)
	}
	if len(w.records) != len(mock.ProcessList) {
		t.Errorf("exported %d records, want %d", len(w.records), len(mock.ProcessList))
	}
}

func TestExportFailureLeavesStateIntact(t *testing.T) {
	mock := telemetry.MockHostData()
	w := &fakeWriter{err: errors.New("disk full")}
	s := NewSession(Options{
		Provider:     mock,
		Exporter:     w,
		BaseInterval: time.Second,
	})
	s.Tick(context.Background(), time.Now())
	before := len(s.View().Records)

	if _, err := s.Export(time.Now()); err == nil {
		t.Fatal("Export() swallowed the writer failure")
	}
	if got := len(s.View().Records); got != before {
		t.Error("failed export disturbed engine state")
	}
}

func TestTerminateSelected(t *testing.T) {
	mock := telemetry.MockHostData()
	s := newTestSession(t, mock)
	s.Tick(context.Background(), time.Now())

	if err := s.Terminate(context.Background()); err == nil {
		t.Error("Terminate() without a selection should fail softly")
	}

	s.Select(901)
	if err := s.Terminate(context.Background()); err != nil {
		t.Fatalf("Terminate() = %v", err)
	}
	if len(mock.Terminated) != 1 || mock.Terminated[0] != 901 {
		t.Errorf("Terminated = %v, want [901]", mock.Terminated)
	}
}

func TestDiskRecordDerivation(t *testing.T) {
	tests := []struct {
		name    string
		raw     telemetry.DiskStat
		used    uint64
		percent float32
	}{
		{"zero capacity", telemetry.DiskStat{TotalBytes: 0, FreeBytes: 0}, 0, 0},
		{"quarter free", telemetry.DiskStat{TotalBytes: 1000, FreeBytes: 250}, 750, 75.0},
		{"free exceeds total", telemetry.DiskStat{TotalBytes: 100, FreeBytes: 200}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewDiskRecord(tt.raw)
			if rec.UsedBytes != tt.used {
				t.Errorf("UsedBytes = %d, want %d", rec.UsedBytes, tt.used)
			}
			if rec.UsagePercent != tt.percent {
				t.Errorf("UsagePercent = %v, want %v", rec.UsagePercent, tt.percent)
			}
		})
	}
}
