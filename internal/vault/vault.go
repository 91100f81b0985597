// Package vault projects a directory tree of markdown notes into an
// addressable, ordered index of file records.
package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fernnotes/fern/internal/constants"
	"github.com/fernnotes/fern/internal/pathutil"
)

// FileRecord identifies one note inside a vault. Records are immutable and
// are replaced wholesale on the next scan.
type FileRecord struct {
	Name         string
	AbsolutePath string
	RelativePath string
}

// Index is the ordered result of one scan pass over a vault. Ordering is
// lexicographic by RelativePath so successive scans diff cleanly.
type Index struct {
	root    string
	records []FileRecord
}

// NewIndex builds an index from pre-collected records, sorting them into
// canonical order. Used by tests and by Scan.
func NewIndex(root string, records []FileRecord) *Index {
	sorted := append([]FileRecord(nil), records...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].RelativePath < sorted[j].RelativePath
	})
	return &Index{root: pathutil.NormalizePath(root), records: sorted}
}

func (idx *Index) Root() string {
	if idx == nil {
		return ""
	}
	return idx.root
}

// Records returns a copy of the indexed file records in canonical order.
func (idx *Index) Records() []FileRecord {
	if idx == nil {
		return nil
	}
	return append([]FileRecord(nil), idx.records...)
}

func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.records)
}

// IsEmpty reports whether the scan found no notes at all. An empty vault is
// an informational state, not an error.
func (idx *Index) IsEmpty() bool {
	return idx.Len() == 0
}

// ByRelativePath returns the record with the given forward-slash relative
// path, if present.
func (idx *Index) ByRelativePath(rel string) (FileRecord, bool) {
	if idx == nil {
		return FileRecord{}, false
	}
	for _, rec := range idx.records {
		if rec.RelativePath == rel {
			return rec, true
		}
	}
	return FileRecord{}, false
}

// Scan walks the vault root depth-first and returns a fresh index. Entries
// whose name starts with a dot are skipped entirely, and only files with the
// note extension are included. Unreadable subtrees are logged and skipped so
// a single bad directory cannot abort the whole scan.
func Scan(root string) (*Index, error) {
	return ScanIgnoring(root, nil)
}

// ScanIgnoring behaves like Scan but additionally skips directories whose
// name appears in ignoredFolders (case-insensitive).
func ScanIgnoring(root string, ignoredFolders []string) (*Index, error) {
	normalized := pathutil.NormalizePath(root)
	if normalized == "" {
		return nil, errors.New("vault directory cannot be empty")
	}
	if info, err := os.Stat(normalized); err != nil {
		return nil, fmt.Errorf("vault root %s: %w", normalized, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("vault root %s is not a directory", normalized)
	}

	ignored := make(map[string]struct{}, len(ignoredFolders))
	for _, name := range ignoredFolders {
		ignored[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}

	records := make([]FileRecord, 0)
	err := filepath.WalkDir(normalized, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Printf("skipping unreadable vault entry %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != normalized {
				return filepath.SkipDir
			}
			if _, skip := ignored[strings.ToLower(d.Name())]; skip && path != normalized {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), constants.NoteExtension) {
			return nil
		}

		rel, relErr := pathutil.VaultRelative(normalized, path)
		if relErr != nil || rel == "" || strings.HasPrefix(rel, "..") {
			return nil
		}

		records = append(records, FileRecord{
			Name:         d.Name(),
			AbsolutePath: path,
			RelativePath: rel,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return NewIndex(normalized, records), nil
}
