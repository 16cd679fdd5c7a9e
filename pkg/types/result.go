// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data structures of the officemd pipeline:
// run configuration, per-document outcomes, and the run report consumed by
// the YAML manifest and the history ledger.
package types

import "time"

// Status is the terminal state of one document's conversion. The two values
// are mutually exclusive; every discovered document ends in exactly one.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// DocumentResult records the outcome of converting a single document.
type DocumentResult struct {
	// Path is the source document path.
	Path string `json:"path" yaml:"path"`

	// OutputPath is the sibling Markdown path. Empty when conversion failed
	// before anything was written.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	// Status is the terminal state.
	Status Status `json:"status" yaml:"status"`

	// Error holds the failure cause for failed documents.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// Duration is the wall-clock time spent on this document.
	Duration time.Duration `json:"duration" yaml:"duration"`

	// Title is the first Markdown heading of the converted output, when any.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Words is the word count of the converted output.
	Words int `json:"words,omitempty" yaml:"words,omitempty"`
}

// RunReport aggregates one conversion run. Counters satisfy
// Total == Succeeded + Failed == len(Documents).
type RunReport struct {
	// ID identifies the run in the report and the history ledger.
	ID string `json:"id" yaml:"id"`

	// Root is the directory tree that was searched.
	Root string `json:"root" yaml:"root"`

	// Extensions is the extension set the run matched against.
	Extensions []string `json:"extensions" yaml:"extensions"`

	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`

	Total     int `json:"total" yaml:"total"`
	Succeeded int `json:"succeeded" yaml:"succeeded"`
	Failed    int `json:"failed" yaml:"failed"`

	// Documents holds one entry per discovered document, in processing order.
	Documents []DocumentResult `json:"documents" yaml:"documents"`
}

// HasFailures reports whether any document failed.
func (r RunReport) HasFailures() bool {
	return r.Failed > 0
}

// FailedDocuments returns the failed entries in processing order.
func (r RunReport) FailedDocuments() []DocumentResult {
	var failed []DocumentResult
	for _, d := range r.Documents {
		if d.Status == StatusFailed {
			failed = append(failed, d)
		}
	}
	return failed
}
