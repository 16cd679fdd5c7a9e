// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeRuntime implements container.Runtime for engine tests.
type fakeRuntime struct {
	name     string
	imageErr error
	runFunc  func(ctx context.Context, image string, args []string, stdin io.Reader, stdout io.Writer) error
}

func (f *fakeRuntime) Name() string { return f.name }

func (f *fakeRuntime) Available() bool { return true }

func (f *fakeRuntime) ImageExists(image string) error { return f.imageErr }

func (f *fakeRuntime) Run(ctx context.Context, image string, args []string, stdin io.Reader, stdout io.Writer) error {
	return f.runFunc(ctx, image, args, stdin, stdout)
}

func TestNewMarkitdownEngine(t *testing.T) {
	rt := &fakeRuntime{name: "docker"}
	if _, err := NewMarkitdownEngine(rt); err != nil {
		t.Fatalf("NewMarkitdownEngine: %v", err)
	}

	rt = &fakeRuntime{name: "docker", imageErr: errors.New("no such image")}
	_, err := NewMarkitdownEngine(rt)
	if err == nil {
		t.Fatal("expected error when image is missing")
	}
	if !strings.Contains(err.Error(), "markitdown image not available") {
		t.Errorf("error = %v, should mention the missing image", err)
	}
}

func TestMarkitdownEngineConvert(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "report.docx")
	if err := os.WriteFile(docPath, []byte("docx bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	var gotImage string
	var gotArgs []string
	rt := &fakeRuntime{
		name: "docker",
		runFunc: func(_ context.Context, image string, args []string, stdin io.Reader, stdout io.Writer) error {
			gotImage = image
			gotArgs = args
			data, _ := io.ReadAll(stdin)
			_, _ = stdout.Write([]byte("# Converted\n\n" + string(data)))
			return nil
		},
	}

	engine, err := NewMarkitdownEngine(rt)
	if err != nil {
		t.Fatal(err)
	}
	got, err := engine.Convert(context.Background(), docPath)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if gotImage != "markitdown:latest" {
		t.Errorf("image = %q, want markitdown:latest", gotImage)
	}
	if strings.Join(gotArgs, " ") != "-x docx" {
		t.Errorf("args = %v, want the extension hint", gotArgs)
	}
	if !strings.Contains(got, "docx bytes") {
		t.Errorf("output should carry converted stdin, got %q", got)
	}
}

func TestMarkitdownEngineConvertEmptyOutput(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "empty.docx")
	if err := os.WriteFile(docPath, []byte("doc"), 0o644); err != nil {
		t.Fatal(err)
	}

	rt := &fakeRuntime{
		name: "docker",
		runFunc: func(_ context.Context, _ string, _ []string, _ io.Reader, _ io.Writer) error {
			return nil
		},
	}
	engine, err := NewMarkitdownEngine(rt)
	if err != nil {
		t.Fatal(err)
	}

	_, err = engine.Convert(context.Background(), docPath)
	if err == nil || !strings.Contains(err.Error(), "empty output") {
		t.Errorf("expected empty-output error, got: %v", err)
	}
}

func TestMarkitdownEngineConvertRunError(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "bad.docx")
	if err := os.WriteFile(docPath, []byte("doc"), 0o644); err != nil {
		t.Fatal(err)
	}

	rt := &fakeRuntime{
		name: "docker",
		runFunc: func(_ context.Context, _ string, _ []string, _ io.Reader, _ io.Writer) error {
			return errors.New("exit status 1")
		},
	}
	engine, err := NewMarkitdownEngine(rt)
	if err != nil {
		t.Fatal(err)
	}

	_, err = engine.Convert(context.Background(), docPath)
	if err == nil || !strings.Contains(err.Error(), "converting") {
		t.Errorf("expected wrapped run error, got: %v", err)
	}
}

func TestMarkitdownEngineConvertMissingFile(t *testing.T) {
	rt := &fakeRuntime{
		name: "docker",
		runFunc: func(_ context.Context, _ string, _ []string, _ io.Reader, _ io.Writer) error {
			t.Fatal("runtime should not run for a missing file")
			return nil
		},
	}
	engine, err := NewMarkitdownEngine(rt)
	if err != nil {
		t.Fatal(err)
	}

	_, err = engine.Convert(context.Background(), filepath.Join(t.TempDir(), "gone.docx"))
	if err == nil || !strings.Contains(err.Error(), "opening") {
		t.Errorf("expected open error, got: %v", err)
	}
}
