package logx

import (
	"strings"
	"testing"

	"wristcode-go/x/logring"
)

func TestLevelFilter(t *testing.T) {
	ring := logring.New(256)
	l := NewRingOnly(LevelWarn, ring)
	l.Debugf("dropped %d", 1)
	l.Infof("dropped %d", 2)
	l.Warnf("kept %d", 3)
	l.Errorf("kept %d", 4)

	got := string(ring.Snapshot(nil))
	if strings.Contains(got, "dropped") {
		t.Fatalf("low-level lines leaked into ring: %q", got)
	}
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("ring holds %d lines, want 2: %q", len(lines), got)
	}
	assertLine(t, lines[0], "Warn:", "kept 3")
	assertLine(t, lines[1], "Error:", "kept 4")
}

// assertLine checks the "Tag: <ms> message" shape without pinning the
// stamp value.
func assertLine(t *testing.T, line, tag, msg string) {
	t.Helper()
	f := strings.SplitN(line, " ", 3)
	if len(f) != 3 || f[0] != tag || f[2] != msg {
		t.Fatalf("line = %q, want %q <ms> %q", line, tag, msg)
	}
	if f[1] == "" {
		t.Fatalf("line %q missing stamp", line)
	}
	for i := 0; i < len(f[1]); i++ {
		if f[1][i] < '0' || f[1][i] > '9' {
			t.Fatalf("stamp %q is not a millisecond count", f[1])
		}
	}
}

func TestNilLoggerIsSilent(t *testing.T) {
	var l *Logger
	// Must not panic.
	l.Infof("boot %s", "ok")
	l.Errorf("fault")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"debug", LevelDebug, true},
		{"info", LevelInfo, true},
		{"", LevelInfo, true},
		{"warn", LevelWarn, true},
		{"error", LevelError, true},
		{"loud", LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ParseLevel(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRingTailAfterWrap(t *testing.T) {
	ring := logring.New(64)
	l := NewRingOnly(LevelInfo, ring)
	for i := 0; i < 20; i++ {
		l.Infof("tick %d", i)
	}
	got := string(ring.Snapshot(nil))
	if !strings.Contains(got, "tick 19") {
		t.Fatalf("newest line missing from ring tail: %q", got)
	}
}
