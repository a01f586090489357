// Package engine implements the adaptive sampling and ranking core of
// syswatch: it decides when to pull a fresh telemetry snapshot, keeps a
// bounded history of aggregate samples for charting, and orders and filters
// the current process table for display.
package engine

import (
	"gitlab.com/tinyland/lab/syswatch/telemetry"
)

// ProcessRecord is one row of the process table snapshot. Records are
// immutable once ingested and replaced wholesale on every refresh; the same
// pid yields a brand-new record each tick.
type ProcessRecord struct {
	// Name is the display name. Never empty: processes the OS reports
	// without a name get a synthesized "PID: <pid>" label.
	Name string `json:"name"`

	// PID is unique within a snapshot but not stable across OS pid reuse.
	PID uint32 `json:"pid"`

	// CPUUsage is the process CPU percentage.
	CPUUsage float32 `json:"cpu_usage"`

	// MemoryUsage is resident memory in bytes.
	MemoryUsage uint64 `json:"memory_usage"`

	// Status is the OS-reported state label (e.g. "running", "sleeping").
	Status string `json:"status"`

	// Owner is the process owner; empty when unknown.
	Owner string `json:"user,omitempty"`

	// CommandLine is the full command line; empty when unavailable.
	CommandLine string `json:"command_line,omitempty"`
}

// DiskRecord is one disk entry, refreshed at a slower cadence than processes.
type DiskRecord struct {
	Name           string             `json:"name"`
	TotalBytes     uint64             `json:"total_bytes"`
	AvailableBytes uint64             `json:"available_bytes"`
	UsedBytes      uint64             `json:"used_bytes"`
	UsagePercent   float32            `json:"usage_percent"`
	Kind           telemetry.DiskKind `json:"kind"`
	Filesystem     string             `json:"filesystem"`
}

// NewDiskRecord derives a DiskRecord from a raw disk descriptor.
// UsedBytes floors at 0 and UsagePercent is 0 for zero-capacity disks,
// so malformed provider entries never produce negative or NaN figures.
func NewDiskRecord(raw telemetry.DiskStat) DiskRecord {
	var used uint64
	if raw.TotalBytes > raw.FreeBytes {
		used = raw.TotalBytes - raw.FreeBytes
	}

	var pct float32
	if raw.TotalBytes > 0 {
		pct = float32(float64(used) / float64(raw.TotalBytes) * 100.0)
	}

	return DiskRecord{
		Name:           raw.Name,
		TotalBytes:     raw.TotalBytes,
		AvailableBytes: raw.FreeBytes,
		UsedBytes:      used,
		UsagePercent:   pct,
		Kind:           raw.Kind,
		Filesystem:     raw.Filesystem,
	}
}

// HistorySample is one aggregate (CPU %, memory MB) pair for charting,
// ordered by arrival.
type HistorySample struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemoryMB   float64 `json:"memory_mb"`
}
