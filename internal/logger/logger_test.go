package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestDefaultIsNop(t *testing.T) {
	if Log == nil || Sugar == nil {
		t.Fatal("global logger is nil before Init")
	}
	// must not panic
	Info("dropped", zap.Int("n", 1))
	Named("session").Debug("dropped")
}

func TestLogLevels(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{"error", []string{"ERROR"}, []string{"WARN", "INFO", "DEBUG"}},
		{"warn", []string{"ERROR", "WARN"}, []string{"INFO", "DEBUG"}},
		{"info", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"debug", []string{"ERROR", "WARN", "INFO", "DEBUG"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(tempDir, tt.level+".log")
			cfg := FileConfig{Path: logFile, MaxSizeMB: 10, MaxBackups: 1, MaxAgeDays: 1}

			if err := InitWithFileConfig(tt.level, cfg, false); err != nil {
				t.Fatalf("InitWithFileConfig() error = %v", err)
			}

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")
			Sync()

			content, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatalf("failed to read log file: %v", err)
			}
			out := string(content)
			for _, exp := range tt.expected {
				if !strings.Contains(out, exp) {
					t.Errorf("expected %s in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(out, exc) {
					t.Errorf("unexpected %s in log output for level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestNamedLogger(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "named.log")
	if err := InitWithFileConfig("info", FileConfig{Path: logFile, MaxSizeMB: 1}, false); err != nil {
		t.Fatalf("InitWithFileConfig() error = %v", err)
	}
	Named("session").Info("brush session started")
	Sync()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "session") {
		t.Errorf("log output %q lacks logger name", content)
	}
}

func TestParseLevel(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error", ""} {
		if _, err := ParseLevel(lvl); err != nil {
			t.Errorf("ParseLevel(%q) error = %v", lvl, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel(\"loud\") error = nil, want error")
	}
	if err := InitWithFileConfig("loud", FileConfig{}, false); err == nil {
		t.Error("InitWithFileConfig() with bad level error = nil, want error")
	}
}

func TestNewWithoutOutputs(t *testing.T) {
	l, err := New("debug", FileConfig{}, false)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if l.Core().Enabled(zap.DebugLevel) {
		t.Error("New() without outputs should discard everything")
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/test.log")

	if cfg.Path != "/tmp/test.log" {
		t.Errorf("Path = %s, want /tmp/test.log", cfg.Path)
	}
	if cfg.MaxSizeMB != 50 {
		t.Errorf("MaxSizeMB = %d, want 50", cfg.MaxSizeMB)
	}
	if cfg.MaxBackups != 3 {
		t.Errorf("MaxBackups = %d, want 3", cfg.MaxBackups)
	}
	if cfg.MaxAgeDays != 7 {
		t.Errorf("MaxAgeDays = %d, want 7", cfg.MaxAgeDays)
	}
	if !cfg.Compress {
		t.Error("Compress = false, want true")
	}
}
