package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel accepted loud")
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var stderr bytes.Buffer
	logger, closeFn, err := New(Options{Level: "info", Stderr: &stderr})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer closeFn()

	logger.Debug("hidden")
	logger.Info("run finished", "steps", 42)

	out := stderr.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written at info level: %s", out)
	}
	if !strings.Contains(out, "run finished") || !strings.Contains(out, "steps=42") {
		t.Errorf("info record missing: %s", out)
	}
}

func TestNewFansOutToJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ubf.log")
	var stderr bytes.Buffer

	logger, closeFn, err := New(Options{Level: "debug", Stderr: &stderr, File: path, JSON: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Debug("tape grew", "cells", 8)
	if err := closeFn(); err != nil {
		t.Fatalf("close error = %v", err)
	}

	if !strings.Contains(stderr.String(), "tape grew") {
		t.Errorf("stderr missing record: %s", stderr.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	var rec map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &rec); err != nil {
		t.Fatalf("log file is not JSON: %v: %s", err, data)
	}
	if rec["msg"] != "tape grew" || rec["cells"] != float64(8) {
		t.Errorf("record = %v", rec)
	}
}

func TestNewBadFile(t *testing.T) {
	_, _, err := New(Options{File: filepath.Join(t.TempDir(), "missing", "x.log")})
	if err == nil {
		t.Error("New() accepted an unwritable log file")
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("Discard logger is enabled for errors")
	}
}
