package handler

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateAddsExtensionAndParents(t *testing.T) {
	dir := t.TempDir()
	h := NewFileHandler(dir)

	path, err := h.Create("sub/idea")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	want := filepath.Join(dir, "sub", "idea.md")
	if path != want {
		t.Fatalf("expected %q, got %q", want, path)
	}
	if !h.Exists(path) {
		t.Fatal("created note should exist")
	}

	if _, err := h.Create("sub/idea"); err == nil {
		t.Fatal("expected error for duplicate note")
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	h := NewFileHandler(dir)
	path := filepath.Join(dir, "deep", "note.md")

	if err := h.WriteFile(path, "content"); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	got, err := h.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	if got != "content" {
		t.Fatalf("expected 'content', got %q", got)
	}
}

func TestRenameKeepsDirectoryAndExtension(t *testing.T) {
	dir := t.TempDir()
	h := NewFileHandler(dir)

	path, err := h.Create("a/original")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	newPath, err := h.Rename(path, "renamed")
	if err != nil {
		t.Fatalf("Rename returned error: %v", err)
	}
	if newPath != filepath.Join(dir, "a", "renamed.md") {
		t.Fatalf("unexpected new path %q", newPath)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("old path should be gone")
	}
}
