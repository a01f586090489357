package engine

import (
	"fmt"
	"strings"

	"gitlab.com/tinyland/lab/syswatch/telemetry"
)

// TableCache holds the most recent filtered process snapshot. Filtering
// happens during ingestion, so the cache only ever contains rows that should
// be visible and the rank index never needs to skip entries.
type TableCache struct {
	records []ProcessRecord
}

// NewTableCache creates an empty cache.
func NewTableCache() *TableCache {
	return &TableCache{}
}

// Ingest replaces the entire cache with the raw process list, deriving
// display names and applying the case-insensitive substring filter. An empty
// filter passes everything. Prior records are discarded wholesale; matching
// pids do not retain identity across refreshes.
func (c *TableCache) Ingest(raw []telemetry.ProcessStat, filter string) {
	c.records = c.records[:0]
	needle := strings.ToLower(filter)

	for _, p := range raw {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("PID: %d", p.PID)
		}

		if needle != "" && !strings.Contains(strings.ToLower(name), needle) {
			continue
		}

		c.records = append(c.records, ProcessRecord{
			Name:        name,
			PID:         p.PID,
			CPUUsage:    float32(p.CPUPercent),
			MemoryUsage: p.MemoryBytes,
			Status:      p.Status,
			Owner:       p.Username,
			CommandLine: p.Cmdline,
		})
	}
}

// Records returns the current snapshot. Callers must treat it as read-only;
// it is invalidated by the next Ingest.
func (c *TableCache) Records() []ProcessRecord { return c.records }

// Len returns the snapshot cardinality.
func (c *TableCache) Len() int { return len(c.records) }

// Find returns a copy of the record with the given pid and whether it is
// present in the current snapshot. Lookup is by pid value equality, never by
// row position, since positions shift every refresh.
func (c *TableCache) Find(pid uint32) (ProcessRecord, bool) {
	for i := range c.records {
		if c.records[i].PID == pid {
			return c.records[i], true
		}
	}
	return ProcessRecord{}, false
}
