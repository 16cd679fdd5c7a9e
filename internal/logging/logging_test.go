// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenWritesConsoleAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversion_errors.log")
	var console bytes.Buffer

	log, err := Open(path, &console)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	log.Error("conversion failed", "path", "/docs/broken.docx", "error", "container crashed")
	if err := log.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"level=ERROR", "conversion failed", "/docs/broken.docx", "container crashed"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("file should contain %q, got: %s", want, data)
		}
		if !strings.Contains(console.String(), want) {
			t.Errorf("console should mirror %q, got: %s", want, console.String())
		}
	}

	if log.Path() != path {
		t.Errorf("Path() = %q, want %q", log.Path(), path)
	}
}

func TestOpenAppendsAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversion_errors.log")

	for _, msg := range []string{"first run", "second run"} {
		log, err := Open(path, &bytes.Buffer{})
		if err != nil {
			t.Fatal(err)
		}
		log.Error(msg)
		if err := log.Close(); err != nil {
			t.Fatal(err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "first run") || !strings.Contains(string(data), "second run") {
		t.Errorf("log should accumulate across runs, got: %s", data)
	}
}

func TestOpenBadPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "errors.log"), &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
	if !strings.Contains(err.Error(), "opening log file") {
		t.Errorf("err = %v", err)
	}
}
