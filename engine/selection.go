package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"gitlab.com/tinyland/lab/syswatch/telemetry"
)

// Selector tracks the single selected process id across refreshes and
// dispatches termination requests. Selection is set only by explicit user
// action; refresh, filter, and sort never change it. A selection whose pid
// vanished from the latest snapshot persists, and the presentation layer must
// render an explicit "no data" state for it.
type Selector struct {
	pid     uint32
	set     bool
	actions telemetry.Actions
	logger  *slog.Logger
}

// NewSelector creates a Selector dispatching terminations through actions.
// If logger is nil, a no-op logger is used.
func NewSelector(actions telemetry.Actions, logger *slog.Logger) *Selector {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Selector{actions: actions, logger: logger}
}

// Select marks the given pid as selected.
func (s *Selector) Select(pid uint32) {
	s.pid = pid
	s.set = true
}

// Clear drops the selection.
func (s *Selector) Clear() {
	s.pid = 0
	s.set = false
}

// Current returns the selected pid, if any.
func (s *Selector) Current() (uint32, bool) {
	return s.pid, s.set
}

// Resolve looks up the selected process's live record in the current cache
// by pid equality. The second return is false both when nothing is selected
// and when the selected pid is absent from the latest snapshot; the
// distinction is available via Current.
func (s *Selector) Resolve(cache *TableCache) (ProcessRecord, bool) {
	if !s.set {
		return ProcessRecord{}, false
	}
	return cache.Find(s.pid)
}

// Terminate sends a best-effort kill request for the given pid. Failure is
// returned to the caller for local notification and never clears the
// selection.
func (s *Selector) Terminate(ctx context.Context, pid uint32) error {
	if s.actions == nil {
		return fmt.Errorf("engine: no process actions configured")
	}
	if err := s.actions.Terminate(ctx, pid); err != nil {
		s.logger.Warn("terminate failed",
			slog.Uint64("pid", uint64(pid)),
			slog.String("error", err.Error()),
		)
		return err
	}
	s.logger.Info("process terminated", slog.Uint64("pid", uint64(pid)))
	return nil
}
