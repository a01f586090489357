package engine

import (
	"math"
	"sort"
	"strings"
)

// SortKey selects which column orders the process table.
type SortKey int

const (
	SortName SortKey = iota
	SortCPU
	SortMemory
	SortStatus
)

// sortKeyNames maps each SortKey to its display label.
var sortKeyNames = map[SortKey]string{
	SortName:   "name",
	SortCPU:    "cpu",
	SortMemory: "memory",
	SortStatus: "status",
}

// String returns the lowercase label for the key, or "name" for unknown values.
func (k SortKey) String() string {
	if name, ok := sortKeyNames[k]; ok {
		return name
	}
	return "name"
}

// ParseSortKey maps a label back to its SortKey. Unknown labels fall back to
// SortName so stale persisted settings never break startup.
func ParseSortKey(name string) SortKey {
	for k, n := range sortKeyNames {
		if n == name {
			return k
		}
	}
	return SortName
}

// DefaultDescending returns the direction a key starts in when first
// selected: numeric columns show the busiest processes first, text columns
// sort ascending.
func (k SortKey) DefaultDescending() bool {
	return k == SortCPU || k == SortMemory
}

// Ranker maintains the rank index: a permutation of snapshot positions that
// defines display order without reordering the snapshot itself.
type Ranker struct {
	key        SortKey
	descending bool
	index      []int
}

// NewRanker creates a Ranker with the default {Name, ascending} order.
func NewRanker() *Ranker {
	return &Ranker{key: SortName}
}

// Key returns the active sort key.
func (r *Ranker) Key() SortKey { return r.key }

// Descending reports the active direction.
func (r *Ranker) Descending() bool { return r.descending }

// Toggle applies the column-click rule: selecting the active key flips
// direction, selecting a different key resets direction to that key's
// default.
func (r *Ranker) Toggle(key SortKey) {
	if r.key == key {
		r.descending = !r.descending
		return
	}
	r.key = key
	r.descending = key.DefaultDescending()
}

// Set replaces the sort state outright, e.g. when restoring persisted
// settings.
func (r *Ranker) Set(key SortKey, descending bool) {
	r.key = key
	r.descending = descending
}

// Reorder recomputes the rank index over the given snapshot with a full
// stable sort. The index buffer is reused in place and only regenerated as
// the identity permutation when the snapshot cardinality changes. Stability
// makes re-sorting an unchanged cache idempotent.
func (r *Ranker) Reorder(records []ProcessRecord) []int {
	if len(r.index) != len(records) {
		r.index = make([]int, len(records))
		for i := range r.index {
			r.index[i] = i
		}
	}

	sort.SliceStable(r.index, func(i, j int) bool {
		cmp := r.compare(&records[r.index[i]], &records[r.index[j]])
		if r.descending {
			return cmp > 0
		}
		return cmp < 0
	})

	return r.index
}

// Index returns the current rank index without recomputing it.
func (r *Ranker) Index() []int { return r.index }

// compare orders two records under the active key. CPU values that do not
// form a total order (NaN) compare as equal rather than poisoning the sort.
func (r *Ranker) compare(a, b *ProcessRecord) int {
	switch r.key {
	case SortCPU:
		return compareFloat32(a.CPUUsage, b.CPUUsage)
	case SortMemory:
		switch {
		case a.MemoryUsage < b.MemoryUsage:
			return -1
		case a.MemoryUsage > b.MemoryUsage:
			return 1
		}
		return 0
	case SortStatus:
		return strings.Compare(a.Status, b.Status)
	default:
		return strings.Compare(a.Name, b.Name)
	}
}

func compareFloat32(a, b float32) int {
	if math.IsNaN(float64(a)) || math.IsNaN(float64(b)) {
		return 0
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
