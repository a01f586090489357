package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	original := &Settings{
		SortKey:        "cpu",
		SortDescending: true,
		Filter:         "chrome",
		BaseInterval:   "500ms",
		EnergySaving:   true,
	}

	if err := s.Save(original); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil {
		t.Fatal("Load returned nil for saved settings")
	}
	if *got != *original {
		t.Errorf("round-trip mismatch: got %+v, want %+v", *got, *original)
	}
}

func TestLoadMissingFileReturnsNil(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != nil {
		t.Errorf("Load of missing file = %+v, want nil", got)
	}
}

func TestLoadRemovesCorruptedFile(t *testing.T) {
	s := newTestStore(t)

	if err := os.WriteFile(s.path(), []byte("{not json"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != nil {
		t.Errorf("corrupted file yielded settings: %+v", got)
	}
	if _, err := os.Stat(s.path()); !os.IsNotExist(err) {
		t.Error("corrupted settings file was not removed")
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(&Settings{SortKey: "name"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	if _, err := New(dir, nil); err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("directory not created: %v", err)
	}
}
