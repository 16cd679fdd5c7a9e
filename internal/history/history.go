// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a ledger of past conversion runs in SQLite. The
// ledger is advisory: conversion never consults it to decide what to
// convert, and callers downgrade every ledger failure to a warning.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/officemd/pkg/types"
)

const (
	defaultDir = ".officemd"
	dbFile     = "history.db"
)

// DefaultPath returns the ledger location used when no --history-db flag is
// given: ~/.officemd/history.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, defaultDir, dbFile), nil
}

// Store manages the run ledger database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the ledger at dbPath. Parent directories and the
// schema are created as needed.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			root TEXT NOT NULL,
			extensions TEXT,
			started_at TEXT,
			finished_at TEXT,
			total INTEGER,
			succeeded INTEGER,
			failed INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			path TEXT NOT NULL,
			output_path TEXT,
			status TEXT NOT NULL,
			error TEXT,
			duration_ms INTEGER,
			title TEXT,
			words INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_run_id ON documents(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveRun records one finished run and its per-document outcomes in a
// single transaction.
func (s *Store) SaveRun(ctx context.Context, report *types.RunReport) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	extensionsJSON, _ := json.Marshal(report.Extensions)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, root, extensions, started_at, finished_at, total, succeeded, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ID, report.Root, string(extensionsJSON),
		report.StartedAt.UTC().Format(time.RFC3339Nano),
		report.FinishedAt.UTC().Format(time.RFC3339Nano),
		report.Total, report.Succeeded, report.Failed,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO documents (run_id, path, output_path, status, error, duration_ms, title, words)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, doc := range report.Documents {
		_, err := stmt.ExecContext(ctx,
			report.ID, doc.Path, doc.OutputPath, string(doc.Status),
			doc.Error, doc.Duration.Milliseconds(), doc.Title, doc.Words,
		)
		if err != nil {
			return fmt.Errorf("inserting document %s: %w", doc.Path, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns up to limit runs, newest first, without their documents.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]types.RunReport, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, root, extensions, started_at, finished_at, total, succeeded, failed
		 FROM runs ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.RunReport
	for rows.Next() {
		var run types.RunReport
		var extensionsJSON, startedAt, finishedAt string
		if err := rows.Scan(&run.ID, &run.Root, &extensionsJSON, &startedAt, &finishedAt,
			&run.Total, &run.Succeeded, &run.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if err := json.Unmarshal([]byte(extensionsJSON), &run.Extensions); err != nil {
			return nil, fmt.Errorf("parsing extensions for run %s: %w", run.ID, err)
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("parsing start time for run %s: %w", run.ID, err)
		}
		if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt); err != nil {
			return nil, fmt.Errorf("parsing finish time for run %s: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunDocuments returns the per-document rows of one run in processing order.
func (s *Store) RunDocuments(ctx context.Context, runID string) ([]types.DocumentResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, output_path, status, error, duration_ms, title, words
		 FROM documents WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []types.DocumentResult
	for rows.Next() {
		var doc types.DocumentResult
		var status string
		var durationMS int64
		if err := rows.Scan(&doc.Path, &doc.OutputPath, &status, &doc.Error,
			&durationMS, &doc.Title, &doc.Words); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		doc.Status = types.Status(status)
		doc.Duration = time.Duration(durationMS) * time.Millisecond
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
