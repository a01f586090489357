package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gitlab.com/tinyland/lab/syswatch/telemetry"
)

// SnapshotWriter persists the current process snapshot; the export package
// provides the JSON implementation. The engine only supplies records and a
// timestamp, serialization and I/O are the writer's concern.
type SnapshotWriter interface {
	WriteSnapshot(records []ProcessRecord, now time.Time) (path string, err error)
}

// Totals holds the aggregate host figures refreshed alongside the process
// table.
type Totals struct {
	GlobalCPUPercent float64
	UsedMemoryBytes  uint64
	TotalMemoryBytes uint64
	UptimeSeconds    float64
}

// Options configures a Session.
type Options struct {
	// Provider supplies telemetry snapshots. Required.
	Provider telemetry.Provider

	// Actions dispatches process terminations. Optional; terminations fail
	// softly without it.
	Actions telemetry.Actions

	// Exporter writes process snapshots on demand. Optional.
	Exporter SnapshotWriter

	// BaseInterval is the user-configured refresh interval.
	BaseInterval time.Duration

	// HistoryCapacity bounds the chart sample ring. Defaults to
	// DefaultHistoryCapacity.
	HistoryCapacity int

	// Logger receives refresh warnings. Nil means discard.
	Logger *slog.Logger
}

// Session is the single ownership root for one dashboard session. It
// composes the scheduler, process cache, ranker, history ring, and selector,
// and is the only mutation entry point: every state change happens
// synchronously inside a Tick or an intent method, so the presentation layer
// never observes a partial refresh.
type Session struct {
	logger   *slog.Logger
	provider telemetry.Provider
	exporter SnapshotWriter

	sched    *Scheduler
	cache    *TableCache
	ranker   *Ranker
	history  *Ring
	selector *Selector

	disks   []DiskRecord
	totals  Totals
	filter  string
	lastRaw []telemetry.ProcessStat
}

// NewSession creates a Session. The first Tick refreshes immediately.
func NewSession(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	base := opts.BaseInterval
	if base <= 0 {
		base = time.Second
	}

	return &Session{
		logger:   logger,
		provider: opts.Provider,
		exporter: opts.Exporter,
		sched:    NewScheduler(base),
		cache:    NewTableCache(),
		ranker:   NewRanker(),
		history:  NewRing(opts.HistoryCapacity),
		selector: NewSelector(opts.Actions, logger),
	}
}

// Tick evaluates the refresh gate and, when due, pulls a new snapshot.
// It returns whether a refresh actually happened. Early invocations are
// harmless: the scheduler simply declines. Provider failures degrade to an
// empty or last-known snapshot and never abort the loop.
func (s *Session) Tick(ctx context.Context, now time.Time) bool {
	if !s.sched.ShouldRefresh(now) {
		return false
	}
	diskDue := s.sched.DiskDue(now)

	s.refreshProcesses(ctx)
	if diskDue {
		s.refreshDisks(ctx)
	}
	s.refreshTotals(ctx)
	s.history.Push(s.totals.GlobalCPUPercent, float64(s.totals.UsedMemoryBytes)/1024.0/1024.0)

	s.sched.MarkRefreshed(now)
	return true
}

// NextWake returns how long the host loop may sleep before invoking Tick
// again.
func (s *Session) NextWake(now time.Time) time.Duration {
	return s.sched.NextWake(now)
}

func (s *Session) refreshProcesses(ctx context.Context) {
	raw, err := s.provider.Processes(ctx)
	if err != nil {
		// A failed pull is a valid empty snapshot, not a fatal condition.
		s.logger.Warn("process refresh failed", slog.String("error", err.Error()))
		raw = nil
	}
	s.lastRaw = raw
	s.cache.Ingest(raw, s.filter)
	s.ranker.Reorder(s.cache.Records())
}

func (s *Session) refreshDisks(ctx context.Context) {
	raw, err := s.provider.Disks(ctx)
	if err != nil {
		// Keep showing the last-known disk list.
		s.logger.Warn("disk refresh failed", slog.String("error", err.Error()))
		return
	}
	s.disks = s.disks[:0]
	for _, d := range raw {
		s.disks = append(s.disks, NewDiskRecord(d))
	}
}

func (s *Session) refreshTotals(ctx context.Context) {
	if pct, err := s.provider.GlobalCPUPercent(ctx); err == nil {
		s.totals.GlobalCPUPercent = pct
	} else {
		s.logger.Warn("cpu total refresh failed", slog.String("error", err.Error()))
	}
	if ms, err := s.provider.Memory(ctx); err == nil {
		s.totals.UsedMemoryBytes = ms.UsedBytes
		s.totals.TotalMemoryBytes = ms.TotalBytes
	} else {
		s.logger.Warn("memory refresh failed", slog.String("error", err.Error()))
	}
	if up, err := s.provider.UptimeSeconds(ctx); err == nil {
		s.totals.UptimeSeconds = up
	} else {
		s.logger.Warn("uptime refresh failed", slog.String("error", err.Error()))
	}
}

// reingest rebuilds the cache and rank index from the retained raw snapshot,
// used when the filter changes between refreshes.
func (s *Session) reingest() {
	s.cache.Ingest(s.lastRaw, s.filter)
	s.ranker.Reorder(s.cache.Records())
}

// View is the read-only state snapshot handed to the presentation layer each
// tick. All slices are copies; the renderer may hold them across ticks.
type View struct {
	Records           []ProcessRecord
	Order             []int
	Disks             []DiskRecord
	History           []HistorySample
	SortKey           SortKey
	Descending        bool
	SelectedPID       uint32
	HasSelection      bool
	Selected          ProcessRecord
	SelectedPresent   bool
	Filter            string
	BaseInterval      time.Duration
	EffectiveInterval time.Duration
	EnergySaving      bool
	Focused           bool
	Totals            Totals
}

// View assembles the current presentation-facing state.
func (s *Session) View() View {
	records := make([]ProcessRecord, len(s.cache.Records()))
	copy(records, s.cache.Records())

	order := make([]int, len(s.ranker.Index()))
	copy(order, s.ranker.Index())

	disks := make([]DiskRecord, len(s.disks))
	copy(disks, s.disks)

	pid, hasSel := s.selector.Current()
	selected, present := s.selector.Resolve(s.cache)

	return View{
		Records:           records,
		Order:             order,
		Disks:             disks,
		History:           s.history.Snapshot(),
		SortKey:           s.ranker.Key(),
		Descending:        s.ranker.Descending(),
		SelectedPID:       pid,
		HasSelection:      hasSel,
		Selected:          selected,
		SelectedPresent:   present,
		Filter:            s.filter,
		BaseInterval:      s.sched.BaseInterval(),
		EffectiveInterval: s.sched.EffectiveInterval(),
		EnergySaving:      s.sched.EnergySaving(),
		Focused:           s.sched.Focused(),
		Totals:            s.totals,
	}
}

// SetFilter replaces the filter text and re-ingests the retained raw
// snapshot so the table narrows immediately instead of waiting for the next
// refresh. Selection is untouched.
func (s *Session) SetFilter(filter string) {
	if filter == s.filter {
		return
	}
	s.filter = filter
	s.reingest()
}

// Filter returns the session filter text.
func (s *Session) Filter() string { return s.filter }

// SetSortKey applies the column-click rule (same key flips direction, new
// key resets to its default) and re-ranks the current cache.
func (s *Session) SetSortKey(key SortKey) {
	s.ranker.Toggle(key)
	s.ranker.Reorder(s.cache.Records())
}

// SetSort restores an explicit sort state, e.g. from persisted settings.
func (s *Session) SetSort(key SortKey, descending bool) {
	s.ranker.Set(key, descending)
	s.ranker.Reorder(s.cache.Records())
}

// SetBaseInterval changes the refresh cadence.
func (s *Session) SetBaseInterval(d time.Duration) {
	s.sched.SetBaseInterval(d)
}

// SetEnergySaving toggles the power-saving multiplier.
func (s *Session) SetEnergySaving(on bool) {
	s.sched.SetEnergySaving(on)
}

// SetFocused records the host window focus state reported by the event loop.
func (s *Session) SetFocused(focused bool) {
	s.sched.SetFocused(focused)
}

// ForceRefresh makes the next Tick refresh unconditionally.
func (s *Session) ForceRefresh() {
	s.sched.ForceRefresh()
}

// Select marks a pid as the current selection.
func (s *Session) Select(pid uint32) {
	s.selector.Select(pid)
}

// ClearSelection drops the selection.
func (s *Session) ClearSelection() {
	s.selector.Clear()
}

// Terminate requests termination of the selected process. The outcome is
// non-fatal either way and the selection is kept so the user can watch the
// process disappear.
func (s *Session) Terminate(ctx context.Context) error {
	pid, ok := s.selector.Current()
	if !ok {
		return fmt.Errorf("engine: no process selected")
	}
	return s.selector.Terminate(ctx, pid)
}

// Export writes the current process snapshot through the configured writer
// and returns the written path. Engine state is unaffected by failure.
func (s *Session) Export(now time.Time) (string, error) {
	if s.exporter == nil {
		return "", fmt.Errorf("engine: no exporter configured")
	}
	return s.exporter.WriteSnapshot(s.cache.Records(), now)
}
