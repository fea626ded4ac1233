package logging

import (
	"testing"

	"log/slog"

	"github.com/stratfolio/stratfolio/internal/config"
)

func TestNewJSONLogger(t *testing.T) {
	logger, err := New(config.LoggingConfig{Level: slog.LevelInfo, Format: "json"})
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNewTextLogger(t *testing.T) {
	logger, err := New(config.LoggingConfig{Level: slog.LevelDebug, Format: "text"})
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNewUnsupportedFormat(t *testing.T) {
	if _, err := New(config.LoggingConfig{Level: slog.LevelInfo, Format: "yaml"}); err == nil {
		t.Error("expected error for unsupported format")
	}
}
