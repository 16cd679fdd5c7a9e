// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/officemd/pkg/types"
)

func TestWrite(t *testing.T) {
	start := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	run := &types.RunReport{
		ID:         "run-1",
		Root:       "/docs",
		Extensions: []string{".docx", ".pptx"},
		StartedAt:  start,
		FinishedAt: start.Add(95 * time.Second),
		Total:      2,
		Succeeded:  1,
		Failed:     1,
		Documents: []types.DocumentResult{
			{
				Path:       "/docs/report.docx",
				OutputPath: "/docs/report.md",
				Status:     types.StatusSucceeded,
				Duration:   1512 * time.Millisecond,
				Title:      "Annual Report",
				Words:      420,
			},
			{
				Path:     "/docs/broken.pptx",
				Status:   types.StatusFailed,
				Error:    "converting /docs/broken.pptx: container crashed",
				Duration: 80 * time.Millisecond,
			},
		},
	}

	path := filepath.Join(t.TempDir(), "conversion-report.yaml")
	if err := Write(path, run); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshaling manifest: %v", err)
	}

	if m.ID != "run-1" || m.Root != "/docs" {
		t.Errorf("identity = %s at %s", m.ID, m.Root)
	}
	if m.StartedAt != "2026-08-25T09:00:00Z" {
		t.Errorf("StartedAt = %q, want RFC 3339", m.StartedAt)
	}
	if m.Duration != "1m35s" {
		t.Errorf("Duration = %q, want 1m35s", m.Duration)
	}
	if m.Total != 2 || m.Succeeded != 1 || m.Failed != 1 {
		t.Errorf("counts = %d/%d/%d", m.Total, m.Succeeded, m.Failed)
	}
	if len(m.Documents) != 2 {
		t.Fatalf("len(Documents) = %d, want 2", len(m.Documents))
	}

	good := m.Documents[0]
	if good.Status != "succeeded" || good.Duration != "1.512s" {
		t.Errorf("good doc = %+v", good)
	}
	if good.Error != "" {
		t.Errorf("good doc should have no error, got %q", good.Error)
	}

	bad := m.Documents[1]
	if bad.Status != "failed" || !strings.Contains(bad.Error, "container crashed") {
		t.Errorf("bad doc = %+v", bad)
	}
	if bad.OutputPath != "" {
		t.Errorf("failed doc should have no output path, got %q", bad.OutputPath)
	}

	// Succeeded documents must not serialize an error key at all.
	if strings.Contains(string(data), "error: \"\"") {
		t.Error("empty error fields should be omitted")
	}
}

func TestWriteUnwritablePath(t *testing.T) {
	run := &types.RunReport{ID: "run-1"}
	err := Write(filepath.Join(t.TempDir(), "missing", "report.yaml"), run)
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
	if !strings.Contains(err.Error(), "writing report") {
		t.Errorf("err = %v", err)
	}
}
