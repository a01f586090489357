// Package telemetry defines the host data sources consumed by the sampling
// engine. The engine trusts values as given; OS-level correctness is the
// provider's problem.
package telemetry

import "context"

// ProcessStat is one raw process entry as reported by the OS.
// Username and Cmdline may be empty when the OS withholds them.
type ProcessStat struct {
	PID         uint32
	Name        string
	CPUPercent  float64
	MemoryBytes uint64
	Status      string
	Username    string
	Cmdline     string
}

// DiskKind classifies the underlying storage device.
type DiskKind string

const (
	DiskSSD     DiskKind = "SSD"
	DiskHDD     DiskKind = "HDD"
	DiskUnknown DiskKind = "Unknown"
)

// DiskStat is one raw disk/partition entry.
type DiskStat struct {
	Name       string
	TotalBytes uint64
	FreeBytes  uint64
	Kind       DiskKind
	Filesystem string
}

// MemoryStat holds global memory totals in bytes.
type MemoryStat struct {
	TotalBytes uint64
	UsedBytes  uint64
}

// Provider supplies one-shot snapshots of host state. Implementations must
// return a valid (possibly empty) result rather than failing on partial data.
type Provider interface {
	// Processes returns the current process table.
	Processes(ctx context.Context) ([]ProcessStat, error)

	// Disks enumerates mounted disks. Called at a slower cadence than Processes.
	Disks(ctx context.Context) ([]DiskStat, error)

	// GlobalCPUPercent returns aggregate CPU usage across all cores (0-100).
	GlobalCPUPercent(ctx context.Context) (float64, error)

	// Memory returns global memory totals.
	Memory(ctx context.Context) (MemoryStat, error)

	// UptimeSeconds returns host uptime.
	UptimeSeconds(ctx context.Context) (float64, error)
}

// Actions is the OS-action collaborator for best-effort process control.
type Actions interface {
	// Terminate asks the OS to kill the given process. A non-nil error means
	// the request was denied or the pid no longer exists; callers treat it
	// as non-fatal.
	Terminate(ctx context.Context, pid uint32) error
}
