// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover enumerates the Office documents a conversion run will
// process. It walks a directory tree once, keeps regular files whose names
// end in one of the requested extensions, and drops Office lock files.
package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// lockFilePrefix marks the transient files Office creates while a document
// is open (for example "~$report.docx"). They are never converted.
const lockFilePrefix = "~$"

// ErrNotDirectory is the cause recorded in a DirectoryError when the search
// root exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// DirectoryError reports an unusable search root. It is returned before any
// file is visited, so a bad root never produces partial work.
type DirectoryError struct {
	Path string
	Err  error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryError) Unwrap() error { return e.Err }

// NormalizeExtensions returns the extension list with a leading dot added
// where missing. Blank entries are dropped.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

// Find returns every regular file under root whose name ends in one of the
// given extensions, excluding Office lock files. The result contains each
// path once, sorted lexicographically, so identical trees always yield
// identical discovery order. Extensions are matched case-sensitively, each
// expected to carry its leading dot.
//
// A missing or non-directory root yields a *DirectoryError before the walk
// starts. Entries the walk cannot read are reported through log as warnings
// and skipped; the rest of the tree is still searched.
func Find(root string, exts []string, log *slog.Logger) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, &DirectoryError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &DirectoryError{Path: root, Err: ErrNotDirectory}
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn("skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, lockFilePrefix) {
			return nil
		}
		for _, ext := range exts {
			if strings.HasSuffix(name, ext) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}
