package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// SystemProvider reads live host state through gopsutil. It implements both
// Provider and Actions.
type SystemProvider struct {
	logger *slog.Logger
}

// NewSystemProvider creates a SystemProvider. If logger is nil, a no-op
// logger is used.
func NewSystemProvider(logger *slog.Logger) *SystemProvider {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SystemProvider{logger: logger}
}

// Processes scans the process table. Entries that disappear or deny access
// mid-scan are skipped; a partial table is still a valid snapshot.
func (p *SystemProvider) Processes(ctx context.Context) ([]ProcessStat, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("telemetry: list processes: %w", err)
	}

	stats := make([]ProcessStat, 0, len(procs))
	for _, proc := range procs {
		if proc == nil || proc.Pid <= 0 {
			continue
		}

		stat := ProcessStat{PID: uint32(proc.Pid)}

		if name, err := proc.NameWithContext(ctx); err == nil {
			stat.Name = name
		}
		if pct, err := proc.CPUPercentWithContext(ctx); err == nil {
			stat.CPUPercent = pct
		}
		if info, err := proc.MemoryInfoWithContext(ctx); err == nil && info != nil {
			stat.MemoryBytes = info.RSS
		}
		if statuses, err := proc.StatusWithContext(ctx); err == nil && len(statuses) > 0 {
			stat.Status = statuses[0]
		}
		if user, err := proc.UsernameWithContext(ctx); err == nil {
			stat.Username = user
		}
		if cl, err := proc.CmdlineWithContext(ctx); err == nil {
			stat.Cmdline = cl
		}

		stats = append(stats, stat)
	}
	return stats, nil
}

// Disks enumerates physical partitions with their usage figures. Partitions
// whose usage cannot be read are skipped.
func (p *SystemProvider) Disks(ctx context.Context) ([]DiskStat, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("telemetry: list partitions: %w", err)
	}

	stats := make([]DiskStat, 0, len(parts))
	for _, part := range parts {
		usage, err := disk.UsageWithContext(ctx, part.Mountpoint)
		if err != nil {
			p.logger.Debug("telemetry: disk usage unreadable",
				slog.String("mountpoint", part.Mountpoint),
				slog.String("error", err.Error()),
			)
			continue
		}
		stats = append(stats, DiskStat{
			Name:       part.Device,
			TotalBytes: usage.Total,
			FreeBytes:  usage.Free,
			Kind:       classifyDisk(part.Device),
			Filesystem: part.Fstype,
		})
	}
	return stats, nil
}

// classifyDisk guesses the device kind from its name. gopsutil exposes no
// rotational flag, so anything unrecognized is Unknown.
func classifyDisk(device string) DiskKind {
	name := strings.ToLower(device)
	switch {
	case strings.Contains(name, "nvme"), strings.Contains(name, "ssd"):
		return DiskSSD
	case strings.Contains(name, "hd"):
		return DiskHDD
	default:
		return DiskUnknown
	}
}

// GlobalCPUPercent returns aggregate CPU usage since the previous call.
func (p *SystemProvider) GlobalCPUPercent(ctx context.Context) (float64, error) {
	pcts, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, fmt.Errorf("telemetry: cpu percent: %w", err)
	}
	if len(pcts) == 0 {
		return 0, nil
	}
	return pcts[0], nil
}

// Memory returns global memory totals.
func (p *SystemProvider) Memory(ctx context.Context) (MemoryStat, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemoryStat{}, fmt.Errorf("telemetry: virtual memory: %w", err)
	}
	return MemoryStat{TotalBytes: vm.Total, UsedBytes: vm.Used}, nil
}

// UptimeSeconds returns host uptime.
func (p *SystemProvider) UptimeSeconds(ctx context.Context) (float64, error) {
	up, err := host.UptimeWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("telemetry: uptime: %w", err)
	}
	return float64(up), nil
}

// Terminate sends a kill request to the given pid.
func (p *SystemProvider) Terminate(ctx context.Context, pid uint32) error {
	proc, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return fmt.Errorf("telemetry: pid %d not found: %w", pid, err)
	}
	if err := proc.KillWithContext(ctx); err != nil {
		return fmt.Errorf("telemetry: kill pid %d: %w", pid, err)
	}
	return nil
}

// Compile-time interface compliance checks.
var (
	_ Provider = (*SystemProvider)(nil)
	_ Actions  = (*SystemProvider)(nil)
)
