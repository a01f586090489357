package format

import "testing"

func TestBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1 << 10, "1.0 KB"},
		{42 << 20, "42.0 MB"},
		{3 << 30, "3.0 GB"},
		{2 << 40, "2.0 TB"},
	}

	for _, tt := range tests {
		if got := Bytes(tt.in); got != tt.want {
			t.Errorf("Bytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMegabytes(t *testing.T) {
	if got := Megabytes(1 << 20); got != "1.0 MB" {
		t.Errorf("Megabytes(1MiB) = %q, want 1.0 MB", got)
	}
}

func TestUptime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{42, "42s"},
		{330, "5m 30s"},
		{8100, "2h 15m"},
		{273600, "3d 4h"},
		{-5, "0s"},
	}

	for _, tt := range tests {
		if got := Uptime(tt.seconds); got != tt.want {
			t.Errorf("Uptime(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestTruncateWithEllipsis(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"a longer string", 10, "a longe..."},
		{"abc", 2, "ab"},
		{"anything", 0, ""},
	}

	for _, tt := range tests {
		if got := TruncateWithEllipsis(tt.in, tt.width); got != tt.want {
			t.Errorf("TruncateWithEllipsis(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
