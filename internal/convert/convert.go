// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements Office-document-to-Markdown conversion and the
// batch driver that walks a list of discovered documents through it. Each
// document moves through convert, normalize, and write independently, so one
// bad file never stops the batch.
package convert

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/officemd/internal/ascii"
	"github.com/pdiddy/officemd/pkg/types"
)

// Describer produces a caption for one image. The caption package provides
// the production implementation backed by the OpenAI vision API.
type Describer interface {
	Describe(ctx context.Context, mimeType string, data []byte) (string, error)
}

// ConversionError reports a document the engine or captioner could not
// handle. The batch driver records it and moves on to the next document.
type ConversionError struct {
	Path string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("converting %s: %v", e.Path, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// WriteError reports Markdown that converted fine but could not be written
// to its output path.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Converter turns one Office document into Markdown, captioning embedded
// images when a Describer is present. A nil Describer disables captioning
// entirely; documents that are not zip containers pass through uncaptioned.
type Converter struct {
	Engine    Engine
	Describer Describer
}

// Convert runs the engine on the document at path and, with captioning
// enabled, describes every embedded raster image and weaves the captions
// into the result. A caption failure fails the document.
func (c *Converter) Convert(ctx context.Context, path string) (string, error) {
	markdown, err := c.Engine.Convert(ctx, path)
	if err != nil {
		return "", err
	}

	if c.Describer == nil {
		return markdown, nil
	}

	images, err := ExtractImages(path)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return markdown, nil
		}
		return "", fmt.Errorf("extracting images: %w", err)
	}

	captions := make([]Caption, 0, len(images))
	for _, img := range images {
		text, err := c.Describer.Describe(ctx, img.MIME, img.Data)
		if err != nil {
			return "", fmt.Errorf("captioning %s: %w", img.Name, err)
		}
		captions = append(captions, Caption{Name: img.Name, Text: text})
	}

	return MergeCaptions(markdown, captions), nil
}

// OutputPath returns the Markdown sibling for an input document: the last
// extension is replaced with ".md", alongside the original.
func OutputPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".md"
}

// Runner drives a batch conversion, printing a status line per document to
// Out and recording each outcome through Log.
type Runner struct {
	Converter *Converter
	Log       *slog.Logger
	Out       io.Writer
}

// Run converts each document in order and returns a report covering every
// input. Failures are isolated per document. Identity and timing fields of
// the report belong to the caller; Run fills documents and counters only.
//
// Cancellation is honored between documents: the report returned alongside
// ctx.Err() covers the documents processed before the interrupt.
func (r *Runner) Run(ctx context.Context, docs []string) (types.RunReport, error) {
	var report types.RunReport
	for i, doc := range docs {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		result := r.convertOne(ctx, doc)
		report.Documents = append(report.Documents, result)
		report.Total++
		switch result.Status {
		case types.StatusSucceeded:
			report.Succeeded++
			fmt.Fprintf(r.Out, "[%d/%d] converted: %s -> %s\n", i+1, len(docs), result.Path, result.OutputPath)
		case types.StatusFailed:
			report.Failed++
			fmt.Fprintf(r.Out, "[%d/%d] failed:  %s (%s)\n", i+1, len(docs), result.Path, result.Error)
		}
	}
	return report, nil
}

func (r *Runner) convertOne(ctx context.Context, path string) types.DocumentResult {
	start := time.Now()
	result := types.DocumentResult{
		Path:       path,
		OutputPath: OutputPath(path),
		Status:     types.StatusSucceeded,
	}
	r.Log.Info("converting", "path", path)

	markdown, err := r.Converter.Convert(ctx, path)
	if err != nil {
		return r.fail(result, start, &ConversionError{Path: path, Err: err})
	}

	markdown = ascii.Normalize(markdown)
	result.Title, result.Words = inspect(markdown)

	if err := writeAtomic(result.OutputPath, markdown); err != nil {
		return r.fail(result, start, &WriteError{Path: result.OutputPath, Err: err})
	}

	result.Duration = time.Since(start)
	r.Log.Info("converted", "path", path, "output", result.OutputPath)
	return result
}

func (r *Runner) fail(result types.DocumentResult, start time.Time, err error) types.DocumentResult {
	result.Status = types.StatusFailed
	result.OutputPath = ""
	result.Error = err.Error()
	result.Duration = time.Since(start)
	r.Log.Error("conversion failed", "path", result.Path, "error", err)
	return result
}

// writeAtomic writes content to destPath through a temp file in the same
// directory, so a crash mid-write never leaves a truncated .md behind.
// An existing file at destPath is replaced.
func writeAtomic(destPath, content string) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".officemd-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.WriteString(content)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing markdown: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
