package engine

// DefaultHistoryCapacity is the number of aggregate samples retained for
// charting. At a 1s refresh interval this covers the last 100 seconds.
const DefaultHistoryCapacity = 100

// Ring is a fixed-capacity FIFO of history samples. Pushing at capacity
// evicts the oldest sample in O(1) by advancing the head over a circular
// buffer; no allocation happens after construction.
type Ring struct {
	buf   []HistorySample
	head  int
	count int
}

// NewRing creates a Ring with the given capacity. Non-positive capacities
// fall back to DefaultHistoryCapacity.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &Ring{buf: make([]HistorySample, capacity)}
}

// Push appends a sample, evicting the oldest when full.
func (r *Ring) Push(cpuPercent, memoryMB float64) {
	sample := HistorySample{CPUPercent: cpuPercent, MemoryMB: memoryMB}
	if r.count == len(r.buf) {
		r.buf[r.head] = sample
		r.head = (r.head + 1) % len(r.buf)
		return
	}
	r.buf[(r.head+r.count)%len(r.buf)] = sample
	r.count++
}

// Snapshot returns the current contents oldest-first. The result is a copy,
// so chart renderers can hold it across the next Push.
func (r *Ring) Snapshot() []HistorySample {
	out := make([]HistorySample, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.buf[(r.head+i)%len(r.buf)]
	}
	return out
}

// Len returns the number of samples currently held.
func (r *Ring) Len() int { return r.count }

// Cap returns the fixed logical capacity.
func (r *Ring) Cap() int { return len(r.buf) }
