package site

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func write(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestBuild_RendersTree(t *testing.T) {
	root := t.TempDir()
	write(t, root, "content/index.md", "---\ntitle: Home\n---\n# Welcome\n")
	write(t, root, "content/guides/deep.md", "---\ntitle: Deep\n---\ndeep page\n")
	write(t, root, "examples/go/main.go", "package main\n")
	write(t, root, "content/code.md", "{{< include path=\"examples/go/main.go\" >}}\n")
	out := filepath.Join(root, "public")

	n, err := Build(context.Background(), Options{
		ContentDir: filepath.Join(root, "content"),
		OutDir:     out,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 pages, got %d", n)
	}

	b, err := os.ReadFile(filepath.Join(out, "index.html"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(b), "Welcome") {
		t.Fatalf("expected rendered heading, got %q", b)
	}

	b, err = os.ReadFile(filepath.Join(out, "guides", "deep.html"))
	if err != nil {
		t.Fatalf("read nested output: %v", err)
	}
	if !strings.Contains(string(b), `href="../snipdoc.css"`) {
		t.Fatalf("expected depth-relative stylesheet link, got %q", b)
	}

	b, err = os.ReadFile(filepath.Join(out, "code.html"))
	if err != nil {
		t.Fatalf("read include page: %v", err)
	}
	if !strings.Contains(string(b), "snippet") {
		t.Fatalf("expected include block, got %q", b)
	}

	if _, err := os.Stat(filepath.Join(out, "snipdoc.css")); err != nil {
		t.Fatalf("expected stylesheet written: %v", err)
	}
}

func TestBuild_BrokenIncludeAbortsBuild(t *testing.T) {
	root := t.TempDir()
	write(t, root, "content/ok.md", "fine\n")
	write(t, root, "content/bad.md", "{{< include path=\"missing.go\" >}}\n")

	_, err := Build(context.Background(), Options{
		ContentDir: filepath.Join(root, "content"),
		OutDir:     filepath.Join(root, "public"),
	})
	if err == nil {
		t.Fatalf("expected build to fail on broken include")
	}
	if !strings.Contains(err.Error(), "bad.md") {
		t.Fatalf("expected error to name the page, got %v", err)
	}
}

func TestBuild_RequiresDirectories(t *testing.T) {
	if _, err := Build(context.Background(), Options{}); err == nil {
		t.Fatalf("expected error for missing directories")
	}
}
