// Package logging includes tests for the zap logger helpers.
package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

// TestNewDevelopmentLogger confirms the development logger builds and logs.
func TestNewDevelopmentLogger(t *testing.T) {
	t.Parallel()

	logger, err := New(true, "debug")
	if err != nil {
		t.Fatalf("New(true) error = %v", err)
	}
	if logger == nil {
		t.Fatal("expected logger to be non-nil")
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("expected debug level to be enabled")
	}
	logger.Debug("development logger ready")
}

// TestNewProductionLogger ensures the production logger configuration succeeds.
func TestNewProductionLogger(t *testing.T) {
	t.Parallel()

	logger, err := New(false, "warn")
	if err != nil {
		t.Fatalf("New(false) error = %v", err)
	}
	if logger == nil {
		t.Fatal("expected logger to be non-nil")
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("expected info level to be disabled at warn")
	}
	logger.Warn("production logger ready")
}

// TestNewRejectsUnknownLevel verifies bad levels surface as errors.
func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	if _, err := New(true, "chatty"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

// TestParseLevelDefaultsToInfo covers the empty level.
func TestParseLevelDefaultsToInfo(t *testing.T) {
	t.Parallel()

	lvl, err := ParseLevel("")
	if err != nil {
		t.Fatalf("ParseLevel(\"\") error = %v", err)
	}
	if lvl != zapcore.InfoLevel {
		t.Fatalf("expected info, got %v", lvl)
	}
}
