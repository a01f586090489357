package telemetry

import (
	"context"
	"math"
	"sync"
)

// MockProvider is a deterministic in-memory Provider and Actions
// implementation for tests and the -demo flag. Each refresh advances a
// tick counter so CPU figures drift in a repeatable pattern.
type MockProvider struct {
	mu sync.Mutex

	// ProcessList is returned by Processes. Mutate between calls to
	// simulate processes appearing and disappearing.
	ProcessList []ProcessStat

	// DiskList is returned by Disks.
	DiskList []DiskStat

	// Mem is returned by Memory.
	Mem MemoryStat

	// Uptime is returned by UptimeSeconds.
	Uptime float64

	// Err, when set, is returned by every Provider method.
	Err error

	// TerminateErr, when set, is returned by Terminate.
	TerminateErr error

	// Terminated records every pid passed to Terminate.
	Terminated []uint32

	tick int
}

// MockHostData returns a MockProvider pre-populated with a small plausible
// host: a handful of processes, two disks, and 16 GiB of memory.
func MockHostData() *MockProvider {
	const gib = 1 << 30
	return &MockProvider{
		ProcessList: []ProcessStat{
			{PID: 1, Name: "systemd", CPUPercent: 0.1, MemoryBytes: 12 << 20, Status: "sleeping", Username: "root", Cmdline: "/sbin/init"},
			{PID: 742, Name: "chrome", CPUPercent: 34.5, MemoryBytes: 1200 << 20, Status: "running", Username: "dev", Cmdline: "/opt/chrome/chrome"},
			{PID: 901, Name: "go", CPUPercent: 12.0, MemoryBytes: 300 << 20, Status: "running", Username: "dev", Cmdline: "go build ./..."},
			{PID: 1204, Name: "sshd", CPUPercent: 0.0, MemoryBytes: 8 << 20, Status: "sleeping", Username: "root", Cmdline: "/usr/sbin/sshd -D"},
			{PID: 4242, Name: "", CPUPercent: 1.5, MemoryBytes: 42 << 20, Status: "zombie", Username: "", Cmdline: ""},
		},
		DiskList: []DiskStat{
			{Name: "/dev/nvme0n1p2", TotalBytes: 512 * gib, FreeBytes: 128 * gib, Kind: DiskSSD, Filesystem: "ext4"},
			{Name: "/dev/sda1", TotalBytes: 2048 * gib, FreeBytes: 512 * gib, Kind: DiskHDD, Filesystem: "xfs"},
		},
		Mem:    MemoryStat{TotalBytes: 16 * gib, UsedBytes: 9 * gib},
		Uptime: 86400 * 3,
	}
}

// Processes returns the configured process list.
func (m *MockProvider) Processes(ctx context.Context) ([]ProcessStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	m.tick++
	out := make([]ProcessStat, len(m.ProcessList))
	copy(out, m.ProcessList)
	return out, nil
}

// Disks returns the configured disk list.
func (m *MockProvider) Disks(ctx context.Context) ([]DiskStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]DiskStat, len(m.DiskList))
	copy(out, m.DiskList)
	return out, nil
}

// GlobalCPUPercent returns a repeatable drifting figure derived from the
// tick counter so demo charts are not flat lines.
func (m *MockProvider) GlobalCPUPercent(ctx context.Context) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return 40 + 25*math.Sin(float64(m.tick)/4), nil
}

// Memory returns the configured totals.
func (m *MockProvider) Memory(ctx context.Context) (MemoryStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return MemoryStat{}, m.Err
	}
	return m.Mem, nil
}

// UptimeSeconds returns the configured uptime.
func (m *MockProvider) UptimeSeconds(ctx context.Context) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Uptime, nil
}

// Terminate records the request and returns TerminateErr.
func (m *MockProvider) Terminate(ctx context.Context, pid uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Terminated = append(m.Terminated, pid)
	return m.TerminateErr
}

// Compile-time interface compliance checks.
var (
	_ Provider = (*MockProvider)(nil)
	_ Actions  = (*MockProvider)(nil)
)
