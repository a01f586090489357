// Package store persists session-long user settings (sort state, filter
// text, refresh interval) between runs. It deliberately does not persist
// telemetry history: the chart window is in-memory only.
package store

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Settings holds the user preferences restored at startup.
type Settings struct {
	// SortKey is the label of the active sort column ("name", "cpu",
	// "memory", "status").
	SortKey string `json:"sort_key"`

	// SortDescending is the active sort direction.
	SortDescending bool `json:"sort_descending"`

	// Filter is the process name filter text.
	Filter string `json:"filter"`

	// BaseInterval is the refresh interval as a duration string.
	BaseInterval string `json:"base_interval"`

	// EnergySaving is the power-saving toggle.
	EnergySaving bool `json:"energy_saving"`
}

// Store reads and writes the settings file. Writes are atomic (temp file +
// rename) so a crash never leaves a corrupted settings file behind.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New creates a Store rooted at dir. The directory is created with 0700
// permissions if it does not exist. If logger is nil, a no-op logger is used.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("store: create directory %s: %w", dir, err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

func (s *Store) path() string {
	return filepath.Join(s.dir, "settings.json")
}

// Load reads the persisted settings. A missing file returns (nil, nil);
// a corrupted file is removed and treated the same way, so stale state can
// never block startup.
func (s *Store) Load() (*Settings, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: read settings: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		s.logger.Warn("store: removing corrupted settings file",
			slog.String("error", err.Error()),
		)
		_ = os.Remove(s.path())
		return nil, nil
	}

	return &settings, nil
}

// Save writes the settings atomically.
func (s *Store) Save(settings *Settings) error {
	encoded, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal settings: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-settings-*.json")
	if err != nil {
		return fmt.Errorf("store: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpName)
		}
	}()

	if err := os.Chmod(tmpName, 0600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("store: chmod temp file: %w", err)
	}
	if _, err := tmp.Write(encoded); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("store: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path()); err != nil {
		return fmt.Errorf("store: rename temp file: %w", err)
	}

	success = true
	return nil
}
