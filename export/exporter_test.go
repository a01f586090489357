package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/syswatch/engine"
)

func TestWriteSnapshotFilenameConvention(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, nil)

	now := time.Date(2025, 6, 1, 12, 34, 56, 0, time.UTC)
	path, err := w.WriteSnapshot([]engine.ProcessRecord{{Name: "bash", PID: 1}}, now)
	if err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	if got := filepath.Base(path); got != "processes_20250601_123456.json" {
		t.Errorf("filename = %q, want processes_20250601_123456.json", got)
	}
}

func TestWriteSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, nil)

	records := []engine.ProcessRecord{
		{Name: "chrome", PID: 742, CPUUsage: 34.5, MemoryUsage: 1 << 30, Status: "running", Owner: "dev"},
		{Name: "PID: 4242", PID: 4242, Status: "zombie"},
	}

	path, err := w.WriteSnapshot(records, time.Now())
	if err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	var got []engine.ProcessRecord
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(got) != 2 || got[0].PID != 742 || got[1].Name != "PID: 4242" {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}

func TestWriteSnapshotCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	w := NewWriter(dir, nil)

	if _, err := w.WriteSnapshot(nil, time.Now()); err != nil {
		t.Fatalf("WriteSnapshot into missing directory: %v", err)
	}
}

func TestWriteSnapshotLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, nil)

	if _, err := w.WriteSnapshot([]engine.ProcessRecord{{PID: 1}}, time.Now()); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}
