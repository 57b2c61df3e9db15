package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func fixedLogger(buf *bytes.Buffer, level Level) *Logger {
	l := New(Config{Level: level, Output: buf, Prefix: "test"})
	l.sink.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input  string
		want   Level
		wantOK bool
	}{
		{"debug", LevelDebug, true},
		{"DEBUG", LevelDebug, true},
		{"info", LevelInfo, true},
		{" warn ", LevelWarn, true},
		{"warning", LevelWarn, true},
		{"Error", LevelError, true},
		{"", LevelInfo, true},
		{"verbose", LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, LevelDebug)

	l.WithFields(map[string]any{"pane": 1, "line": 7}).Warn("missing line %d", 7)

	want := "2024-01-02T03:04:05.000 [WARN] test: missing line 7 {line=7, pane=1}\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, LevelWarn)

	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")

	out := buf.String()
	if strings.Contains(out, "debug") || strings.Contains(out, "info") {
		t.Errorf("messages below the level were written: %q", out)
	}
	if !strings.Contains(out, "[WARN]") || !strings.Contains(out, "[ERROR]") {
		t.Errorf("expected warn and error, got %q", out)
	}
}

func TestDerivedLoggersShareLevel(t *testing.T) {
	var buf bytes.Buffer
	root := fixedLogger(&buf, LevelError)
	child := root.WithComponent("composite")

	child.Info("hidden")
	root.SetLevel(LevelInfo)
	child.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("child logged below the initial level")
	}
	if !strings.Contains(out, "shown {component=composite}") {
		t.Errorf("child did not pick up the new level: %q", out)
	}
	if root.Level() != LevelInfo {
		t.Errorf("Level() = %v", root.Level())
	}
}

func TestLoggerDisableEnable(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, LevelDebug)

	l.Disable()
	l.Error("quiet")
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}
	l.Enable()
	l.Error("loud")
	if !strings.Contains(buf.String(), "loud") {
		t.Error("enabled logger wrote nothing")
	}

	var other bytes.Buffer
	l.SetOutput(&other)
	l.Info("moved")
	if !strings.Contains(other.String(), "moved") {
		t.Error("SetOutput did not redirect")
	}
}

func TestNull(t *testing.T) {
	// Must not panic or write anywhere.
	Null().WithField("k", "v").Error("nothing %d", 1)
}

func TestGetSet(t *testing.T) {
	prev := Get()
	if prev == nil {
		t.Fatal("Get() returned nil")
	}
	defer Set(prev)

	n := Null()
	Set(n)
	if Get() != n {
		t.Error("Set did not replace the process logger")
	}
}
