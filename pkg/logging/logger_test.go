package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"unknown": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Service: "tourrec", Module: "recommend", Level: "info"}, &buf)
	logger.Debug("hidden")
	logger.Info("hello", slog.Int("n", 5))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %s", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	for _, key := range []string{"timestamp", "service", "module", "msg"} {
		if _, ok := rec[key]; !ok {
			t.Errorf("log line missing %q: %v", key, rec)
		}
	}
	if rec["service"] != "tourrec" || rec["n"] != float64(5) {
		t.Errorf("unexpected log record: %v", rec)
	}
}

func TestNewWithWriter_Text(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(Config{Format: "text"}, &buf).Warn("careful")
	if !strings.Contains(buf.String(), "level=WARN") || !strings.Contains(buf.String(), "msg=careful") {
		t.Errorf("text output = %q", buf.String())
	}
}
