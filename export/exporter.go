// Package export serializes process snapshots to timestamped JSON files.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gitlab.com/tinyland/lab/syswatch/engine"
)

// filenameFormat yields names like processes_20250601_120000.json.
const filenameFormat = "20060102_150405"

// Writer writes process snapshots into a target directory. Writes are
// atomic (temp file + rename) so a crash mid-export never leaves a
// truncated file behind.
type Writer struct {
	dir    string
	logger *slog.Logger
}

// NewWriter creates a Writer targeting dir. If logger is nil, a no-op
// logger is used.
func NewWriter(dir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Writer{dir: dir, logger: logger}
}

// WriteSnapshot serializes records as pretty JSON to
// processes_<YYYYMMDD_HHMMSS>.json and returns the written path. The engine
// treats any error as a local notification, never a fatal condition.
func (w *Writer) WriteSnapshot(records []engine.ProcessRecord, now time.Time) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("export: create directory %s: %w", w.dir, err)
	}

	encoded, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("export: marshal snapshot: %w", err)
	}

	name := fmt.Sprintf("processes_%s.json", now.Format(filenameFormat))
	path := filepath.Join(w.dir, name)

	tmp, err := os.CreateTemp(w.dir, ".tmp-export-*.json")
	if err != nil {
		return "", fmt.Errorf("export: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(encoded); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("export: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("export: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("export: rename to %s: %w", name, err)
	}

	success = true
	w.logger.Info("snapshot exported",
		slog.String("path", path),
		slog.Int("records", len(records)),
	)
	return path, nil
}

// Compile-time interface compliance check.
var _ engine.SnapshotWriter = (*Writer)(nil)
