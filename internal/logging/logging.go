// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging wires the structured logger to the conversion error log.
// Records land on the console and in an append-mode file, so failure details
// survive past the terminal scrollback and accumulate across runs.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// DefaultFileName is the error log created in the working directory when no
// --log-file flag is given.
const DefaultFileName = "conversion_errors.log"

// Log owns the log file and the slog logger writing to it.
type Log struct {
	*slog.Logger
	file *os.File
	path string
}

// Open creates a logger whose text records go to both console and the
// append-mode file at path. The file is created when missing and never
// truncated.
func Open(path string, console io.Writer) (*Log, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	handler := slog.NewTextHandler(io.MultiWriter(console, f), nil)
	return &Log{
		Logger: slog.New(handler),
		file:   f,
		path:   path,
	}, nil
}

// Path returns the log file location, for the end-of-run pointer.
func (l *Log) Path() string { return l.path }

// Close releases the log file.
func (l *Log) Close() error {
	return l.file.Close()
}
