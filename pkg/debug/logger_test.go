package debug

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerLevelGate(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LogLevelInfo)

	l.Debugf("test", "hidden %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("debug message written below level: %q", buf.String())
	}

	l.Infof("test", "note %d", 60)
	got := buf.String()
	if !strings.Contains(got, "[INFO] test: note 60") {
		t.Fatalf("info output = %q", got)
	}
}

func TestLoggerOff(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LogLevelOff)

	l.Errorf("test", "nope")
	if buf.Len() != 0 {
		t.Fatalf("LogLevelOff still wrote: %q", buf.String())
	}
}

func TestLoggerSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LogLevelOff)

	if l.Enabled(LogLevelError) {
		t.Fatal("Enabled(Error) true at LogLevelOff")
	}
	l.SetLevel(LogLevelDebug)
	if !l.Enabled(LogLevelDebug) {
		t.Fatal("Enabled(Debug) false at LogLevelDebug")
	}
	if l.Level() != LogLevelDebug {
		t.Fatalf("Level() = %v, want Debug", l.Level())
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
