package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Warn("Test warning message")
	Error("Test error message")
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Output: &buf}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	Debug("hidden debug")
	Info("hidden info")
	Warn("visible warning", "op", "save")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("non-debug logger wrote below warn level: %q", out)
	}
	if !strings.Contains(out, "visible warning") || !strings.Contains(out, "op=save") {
		t.Errorf("expected warning with keyvals, got %q", out)
	}

	buf.Reset()
	if err := Init(Config{Debug: true, Output: &buf}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	Debug("shown debug")
	if !strings.Contains(buf.String(), "shown debug") {
		t.Errorf("debug logger dropped debug message: %q", buf.String())
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
	With("component", "test").Info("discarded")
}
