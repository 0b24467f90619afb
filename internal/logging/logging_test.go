package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warning", log.WarnLevel},
		{" error ", log.ErrorLevel},
		{"bogus", log.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewWritesToFallback(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Options{Level: "warn"}, &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closer.Close()

	logger.Info("hidden")
	logger.Warn("shown", "op", "create")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info should be filtered at warn: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "op=create") {
		t.Errorf("expected warn line with fields, got %q", out)
	}
}

func TestNewWritesToFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "logs", "tada.log")
	var buf bytes.Buffer
	logger, closer, err := New(Options{Level: "debug", Format: "json", File: p}, &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("probe", "status", 503)
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("fallback should be unused when a file is set: %q", buf.String())
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), `"msg":"probe"`) {
		t.Errorf("expected json log line, got %q", b)
	}
}
