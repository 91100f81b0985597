// Package handler provides vault-scoped file primitives for note I/O.
package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fernnotes/fern/internal/constants"
	"github.com/fernnotes/fern/internal/pathutil"
)

type FileHandler struct {
	vaultDir string
}

func NewFileHandler(vaultDir string) *FileHandler {
	return &FileHandler{vaultDir: pathutil.NormalizePath(vaultDir)}
}

func (h *FileHandler) VaultDir() string {
	return h.vaultDir
}

func (h *FileHandler) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (h *FileHandler) WriteFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func (h *FileHandler) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Create makes a new empty note at the given vault-relative path, adding the
// note extension when missing. It refuses to clobber an existing note.
func (h *FileHandler) Create(rel string) (string, error) {
	trimmed := strings.TrimSpace(rel)
	if trimmed == "" {
		return "", fmt.Errorf("note name cannot be empty")
	}
	if !strings.HasSuffix(strings.ToLower(trimmed), constants.NoteExtension) {
		trimmed += constants.NoteExtension
	}

	path := filepath.Join(h.vaultDir, filepath.FromSlash(trimmed))
	if h.Exists(path) {
		return "", fmt.Errorf("note %s already exists", trimmed)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	file.Close()

	return path, nil
}

// Rename moves a note to a new name within its directory, keeping the
// extension.
func (h *FileHandler) Rename(path, newName string) (string, error) {
	trimmed := strings.TrimSpace(newName)
	if trimmed == "" {
		return "", fmt.Errorf("note name cannot be empty")
	}
	if !strings.HasSuffix(strings.ToLower(trimmed), constants.NoteExtension) {
		trimmed += constants.NoteExtension
	}

	newPath := filepath.Join(filepath.Dir(path), trimmed)
	if h.Exists(newPath) {
		return "", fmt.Errorf("note %s already exists", trimmed)
	}

	if err := os.Rename(path, newPath); err != nil {
		return "", err
	}
	return newPath, nil
}
