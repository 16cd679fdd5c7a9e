// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes the YAML manifest summarizing one conversion run.
// The manifest lands next to the converted documents and is purely
// informational; nothing reads it back.
package report

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/officemd/pkg/types"
)

// DefaultName is the manifest file name used when no --report flag is given.
const DefaultName = "conversion-report.yaml"

// Manifest is the file shape of a run report. Timestamps render as RFC 3339
// and durations as strings ("1.52s") so the manifest reads well untooled.
type Manifest struct {
	ID         string             `yaml:"id"`
	Root       string             `yaml:"root"`
	Extensions []string           `yaml:"extensions"`
	StartedAt  string             `yaml:"started_at"`
	FinishedAt string             `yaml:"finished_at"`
	Duration   string             `yaml:"duration"`
	Total      int                `yaml:"total"`
	Succeeded  int                `yaml:"succeeded"`
	Failed     int                `yaml:"failed"`
	Documents  []ManifestDocument `yaml:"documents"`
}

// ManifestDocument is one converted document in the manifest.
type ManifestDocument struct {
	Path       string `yaml:"path"`
	OutputPath string `yaml:"output_path,omitempty"`
	Status     string `yaml:"status"`
	Error      string `yaml:"error,omitempty"`
	Duration   string `yaml:"duration"`
	Title      string `yaml:"title,omitempty"`
	Words      int    `yaml:"words,omitempty"`
}

// Write renders the run report as YAML at path.
func Write(path string, run *types.RunReport) error {
	data, err := yaml.Marshal(build(run))
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func build(run *types.RunReport) Manifest {
	m := Manifest{
		ID:         run.ID,
		Root:       run.Root,
		Extensions: run.Extensions,
		StartedAt:  run.StartedAt.UTC().Format(time.RFC3339),
		FinishedAt: run.FinishedAt.UTC().Format(time.RFC3339),
		Duration:   run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String(),
		Total:      run.Total,
		Succeeded:  run.Succeeded,
		Failed:     run.Failed,
	}
	m.Documents = make([]ManifestDocument, len(run.Documents))
	for i, doc := range run.Documents {
		m.Documents[i] = ManifestDocument{
			Path:       doc.Path,
			OutputPath: doc.OutputPath,
			Status:     string(doc.Status),
			Error:      doc.Error,
			Duration:   doc.Duration.Round(time.Millisecond).String(),
			Title:      doc.Title,
			Words:      doc.Words,
		}
	}
	return m
}
