// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/officemd/internal/logging"
	"github.com/pdiddy/officemd/pkg/types"
)

func TestBuildConfigDefaultLogFile(t *testing.T) {
	cfg, err := buildConfig(rootCmd)
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}
	if cfg.LogFile != logging.DefaultFileName {
		t.Errorf("LogFile = %q, want %q in the working directory", cfg.LogFile, logging.DefaultFileName)
	}
}

func TestRunRecordsBadRootInLog(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "errors.log")
	cfg := types.Config{
		Root:       filepath.Join(dir, "missing"),
		Extensions: []string{".docx"},
		LogFile:    logPath,
		ReportPath: filepath.Join(dir, "report.yaml"),
		NoHistory:  true,
	}

	if err := run(context.Background(), cfg, io.Discard, io.Discard); err == nil {
		t.Fatal("expected an error for a missing root")
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	logText := string(data)
	if !strings.Contains(logText, "run failed") {
		t.Errorf("log should record the fatal cause, got:\n%s", logText)
	}
	if !strings.Contains(logText, "missing") {
		t.Errorf("log should name the bad directory, got:\n%s", logText)
	}
}

func TestRunRecordsMissingRuntimeInLog(t *testing.T) {
	t.Setenv("PATH", "") // neither docker nor podman resolves

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "memo.docx"), []byte("doc"), 0o644); err != nil {
		t.Fatal(err)
	}
	logPath := filepath.Join(dir, "errors.log")
	cfg := types.Config{
		Root:       dir,
		Extensions: []string{".docx"},
		LogFile:    logPath,
		ReportPath: filepath.Join(dir, "report.yaml"),
		NoHistory:  true,
	}

	if err := run(context.Background(), cfg, io.Discard, io.Discard); err == nil {
		t.Fatal("expected an error without a container runtime")
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	logText := string(data)
	if !strings.Contains(logText, "starting conversion") {
		t.Errorf("log should record the run start, got:\n%s", logText)
	}
	if !strings.Contains(logText, "run failed") {
		t.Errorf("log should record the fatal cause, got:\n%s", logText)
	}
}

func TestPrintSummaryNamesFailedDocuments(t *testing.T) {
	rep := types.RunReport{
		Total:      3,
		Succeeded:  2,
		Failed:     1,
		StartedAt:  time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2026, 3, 14, 9, 5, 0, 0, time.UTC),
		Documents: []types.DocumentResult{
			{Path: "/docs/a.docx", OutputPath: "/docs/a.md", Status: types.StatusSucceeded},
			{Path: "/docs/b.docx", Status: types.StatusFailed, Error: "converting /docs/b.docx: container crashed"},
			{Path: "/docs/c.docx", OutputPath: "/docs/c.md", Status: types.StatusSucceeded},
		},
	}

	var buf bytes.Buffer
	printSummary(&buf, &rep, "conversion_errors.log")
	out := buf.String()

	if !strings.Contains(out, "3 total, 2 succeeded, 1 failed") {
		t.Errorf("summary should carry the counters, got:\n%s", out)
	}
	if !strings.Contains(out, "Failed documents:\n  /docs/b.docx\n") {
		t.Errorf("summary should name the failed document, got:\n%s", out)
	}
	if strings.Contains(out, "/docs/a.docx") {
		t.Errorf("succeeded documents do not belong in the failure list, got:\n%s", out)
	}
	if !strings.Contains(out, "See conversion_errors.log for failure details") {
		t.Errorf("summary should point at the log, got:\n%s", out)
	}
}

func TestPrintSummaryCleanRunOmitsFailureSection(t *testing.T) {
	rep := types.RunReport{
		Total:      1,
		Succeeded:  1,
		StartedAt:  time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2026, 3, 14, 9, 1, 0, 0, time.UTC),
		Documents: []types.DocumentResult{
			{Path: "/docs/a.docx", OutputPath: "/docs/a.md", Status: types.StatusSucceeded},
		},
	}

	var buf bytes.Buffer
	printSummary(&buf, &rep, "conversion_errors.log")
	out := buf.String()

	if strings.Contains(out, "Failed documents") {
		t.Errorf("clean run should not print a failure list, got:\n%s", out)
	}
	if strings.Contains(out, "conversion_errors.log") {
		t.Errorf("clean run should not point at the log, got:\n%s", out)
	}
}
