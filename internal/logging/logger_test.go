package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("resolved item", String("title", "Dune"), Int("coverage", 3))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if record["msg"] != "resolved item" {
		t.Errorf("msg = %v, want %q", record["msg"], "resolved item")
	}
	if record["level"] != "info" {
		t.Errorf("level = %v, want info", record["level"])
	}
	if record["title"] != "Dune" {
		t.Errorf("title = %v, want Dune", record["title"])
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("quiet")
	logger.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Error("info record emitted at warn level")
	}
	if !strings.Contains(out, "loud") {
		t.Error("warn record missing")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestNopLoggerSilent(t *testing.T) {
	logger := NewNop()
	logger.Error("should vanish", Error(nil))
}

func TestComponentLoggerNilBase(t *testing.T) {
	logger := NewComponentLogger(nil, "resolver")
	logger.Info("no panic expected")
}
