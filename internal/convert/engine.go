// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/officemd/internal/container"
)

const imageMarkitdown = "markitdown:latest"

// Engine turns one document into Markdown text. The production engine runs
// the markitdown container; tests substitute fakes.
type Engine interface {
	// Convert reads the document at path and returns its Markdown rendering.
	Convert(ctx context.Context, path string) (string, error)
}

// MarkitdownEngine converts documents by piping them through the markitdown
// container image. It depends on a container.Runtime (docker or podman)
// injected at construction time.
type MarkitdownEngine struct {
	runtime container.Runtime
}

// NewMarkitdownEngine creates an engine that uses the given container
// runtime to run the markitdown image. It verifies that the image exists
// locally before returning.
func NewMarkitdownEngine(rt container.Runtime) (*MarkitdownEngine, error) {
	if err := rt.ImageExists(imageMarkitdown); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &MarkitdownEngine{runtime: rt}, nil
}

// Convert pipes the document through the markitdown container. The file
// extension travels along as a format hint because the container reads the
// document from stdin and cannot see its name.
func (m *MarkitdownEngine) Convert(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var args []string
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
		args = append(args, "-x", ext)
	}

	var out bytes.Buffer
	if err := m.runtime.Run(ctx, imageMarkitdown, args, f, &out); err != nil {
		return "", fmt.Errorf("converting %s with markitdown: %w", path, err)
	}

	if out.Len() == 0 {
		return "", fmt.Errorf("markitdown produced empty output for %s", path)
	}

	return out.String(), nil
}
