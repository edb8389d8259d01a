// Package logging provides unit tests for the structured logger.
package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLoggerEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, LevelDebug)

	logger.Info("checklist created", map[string]interface{}{"id": "123"})

	line := strings.TrimSpace(buf.String())
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("Log line is not JSON: %v (%q)", err, line)
	}
	if entry["msg"] != "checklist created" {
		t.Errorf("Expected message field, got %v", entry)
	}
	if entry["id"] != "123" {
		t.Errorf("Expected context field, got %v", entry)
	}
	if entry["level"] != "info" {
		t.Errorf("Expected level field, got %v", entry)
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, LevelError)

	logger.Debug("noisy")
	logger.Info("still noisy")
	logger.Warn("also filtered")
	if buf.Len() != 0 {
		t.Errorf("Expected sub-error levels filtered, got %q", buf.String())
	}

	logger.Error("it broke", errors.New("cause"))
	if !strings.Contains(buf.String(), "it broke") {
		t.Errorf("Expected error logged, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "cause") {
		t.Errorf("Expected error cause attached, got %q", buf.String())
	}
}

func TestContextMapsAreMerged(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, LevelDebug)

	logger.Info("merged",
		map[string]interface{}{"a": "1"},
		map[string]interface{}{"b": "2"},
	)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Log line is not JSON: %v", err)
	}
	if entry["a"] != "1" || entry["b"] != "2" {
		t.Errorf("Expected merged context, got %v", entry)
	}
}
