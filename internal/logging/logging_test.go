package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, encoding := range []string{"json", "console"} {
		logger, err := New("info", encoding)
		if err != nil {
			t.Fatalf("unexpected error for %s encoding: %v", encoding, err)
		}
		if logger == nil {
			t.Fatalf("expected logger instance")
		}
		_ = logger.Sync()
	}
}

func TestNewAppliesLevel(t *testing.T) {
	logger, err := New("warn", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("expected info to be disabled at warn level")
	}
	if !logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatalf("expected error to be enabled at warn level")
	}
}

func TestNewRejectsInvalidInput(t *testing.T) {
	if _, err := New("loud", "json"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if _, err := New("info", "xml"); err == nil {
		t.Fatalf("expected error for unknown encoding")
	}
}
