package engine

import "time"

const (
	// minWakeQuantum floors NextWake so an early-invoking host never spins.
	minWakeQuantum = 100 * time.Millisecond

	// diskRefreshFactor gates disk enumeration to 2x the base interval,
	// decoupling slow disk scans from fast process polling.
	diskRefreshFactor = 2

	// unfocusedFactor and energySavingFactor stretch the base interval when
	// the window is unfocused or the user enabled power saving.
	unfocusedFactor    = 5
	energySavingFactor = 2
)

// Scheduler decides, each tick, whether enough wall-clock time has elapsed
// to justify a new telemetry pull. It is a pure timestamp comparison:
// failure-free, no retries, no persistence. Callers that wake early are
// simply told to wait again.
type Scheduler struct {
	base         time.Duration
	lastRefresh  time.Time
	focused      bool
	energySaving bool
}

// NewScheduler creates a Scheduler with the given base interval. The window
// is assumed focused until the host reports otherwise, and the first
// ShouldRefresh fires immediately.
func NewScheduler(base time.Duration) *Scheduler {
	return &Scheduler{base: base, focused: true}
}

// EffectiveInterval applies the focus/energy-saving multipliers to the base
// interval: x1 focused, x2 focused with energy saving, x5 unfocused.
func (s *Scheduler) EffectiveInterval() time.Duration {
	switch {
	case !s.focused:
		return s.base * unfocusedFactor
	case s.energySaving:
		return s.base * energySavingFactor
	default:
		return s.base
	}
}

// ShouldRefresh reports whether a refresh is due at the given instant.
// It has no side effects; the caller commits via MarkRefreshed.
func (s *Scheduler) ShouldRefresh(now time.Time) bool {
	return now.Sub(s.lastRefresh) >= s.EffectiveInterval()
}

// NextWake returns how long the host event loop may sleep before the next
// refresh becomes due, floored at the minimum wake quantum.
func (s *Scheduler) NextWake(now time.Time) time.Duration {
	remaining := s.EffectiveInterval() - now.Sub(s.lastRefresh)
	if remaining < minWakeQuantum {
		return minWakeQuantum
	}
	return remaining
}

// DiskDue reports whether the slower disk snapshot should also be attempted.
// It must be evaluated before MarkRefreshed, like the refresh gate itself.
func (s *Scheduler) DiskDue(now time.Time) bool {
	return now.Sub(s.lastRefresh) > s.base*diskRefreshFactor
}

// MarkRefreshed records that a refresh actually happened. Tick evaluations
// that decline never touch the timestamp.
func (s *Scheduler) MarkRefreshed(now time.Time) {
	s.lastRefresh = now
}

// ForceRefresh backdates the last refresh by one effective interval so the
// next ShouldRefresh fires regardless of focus or energy-saving state.
func (s *Scheduler) ForceRefresh() {
	s.lastRefresh = s.lastRefresh.Add(-s.EffectiveInterval())
}

// SetBaseInterval changes the user-configured base interval.
func (s *Scheduler) SetBaseInterval(d time.Duration) {
	if d > 0 {
		s.base = d
	}
}

// BaseInterval returns the user-configured base interval.
func (s *Scheduler) BaseInterval() time.Duration { return s.base }

// SetFocused records the host window focus state.
func (s *Scheduler) SetFocused(focused bool) { s.focused = focused }

// Focused reports the host window focus state.
func (s *Scheduler) Focused() bool { return s.focused }

// SetEnergySaving toggles the power-saving multiplier.
func (s *Scheduler) SetEnergySaving(on bool) { s.energySaving = on }

// EnergySaving reports whether power saving is enabled.
func (s *Scheduler) EnergySaving() bool { return s.energySaving }
