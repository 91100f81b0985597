// Package index maintains the shared vault index and coordinates rescans
// triggered by the vault watcher.
package index

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/fernnotes/fern/internal/pathutil"
	"github.com/fernnotes/fern/internal/vault"
)

// ErrClosed signals that the index service has been shut down and cannot be
// used to produce new snapshots.
var ErrClosed = errors.New("index service closed")

// ErrUnavailable indicates that the vault index has not been built yet.
var ErrUnavailable = errors.New("vault index unavailable")

// Stats captures lightweight instrumentation about the shared index.
type Stats struct {
	LastRebuild time.Time
	Pending     int
}

// Service owns the index for one vault. Changed paths queued by the watcher
// mark the index stale; the next snapshot acquisition replaces it with a
// fresh whole-vault scan. Individual records are never patched in place.
type Service struct {
	mu          sync.RWMutex
	vault       string
	index       *vault.Index
	pending     int
	lastRebuild time.Time
	closed      bool

	now    func() time.Time
	scan   func(string) (*vault.Index, error)
	maxAge time.Duration
}

// NewService constructs an index service rooted at the vault directory.
func NewService(vaultDir string) *Service {
	return NewServiceIgnoring(vaultDir, nil)
}

// NewServiceIgnoring additionally skips the named folders on every rescan,
// honoring the workspace's search configuration.
func NewServiceIgnoring(vaultDir string, ignoredFolders []string) *Service {
	folders := append([]string(nil), ignoredFolders...)
	return &Service{
		vault: pathutil.NormalizePath(vaultDir),
		now:   time.Now,
		scan: func(root string) (*vault.Index, error) {
			return vault.ScanIgnoring(root, folders)
		},
		maxAge: time.Hour,
	}
}

// AcquireSnapshot returns the current index, rescanning first when the index
// is missing, stale, or older than the refresh age.
func (s *Service) AcquireSnapshot() (*vault.Index, error) {
	if s == nil {
		return nil, ErrUnavailable
	}

	if err := s.ensureFresh(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}
	if s.index == nil {
		return nil, ErrUnavailable
	}
	return s.index, nil
}

// QueueUpdate marks the index stale for the given relative path. The path
// itself is not diffed; the next acquisition performs a full rescan.
func (s *Service) QueueUpdate(rel string) {
	if s == nil || strings.TrimSpace(rel) == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.pending++
}

// Stats returns instrumentation about the index lifecycle.
func (s *Service) Stats() Stats {
	if s == nil {
		return Stats{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{LastRebuild: s.lastRebuild, Pending: s.pending}
}

// Close releases the service. Subsequent snapshot acquisitions return
// ErrClosed.
func (s *Service) Close() error {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.index = nil
	return nil
}

func (s *Service) ensureFresh() error {
	s.mu.RLock()
	closed := s.closed
	needsRebuild := s.index == nil || s.pending > 0
	if !needsRebuild && s.maxAge > 0 {
		needsRebuild = s.now().Sub(s.lastRebuild) > s.maxAge
	}
	s.mu.RUnlock()

	if closed {
		return ErrClosed
	}
	if !needsRebuild {
		return nil
	}
	return s.rebuild()
}

func (s *Service) rebuild() error {
	idx, err := s.scan(s.vault)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	s.index = idx
	s.pending = 0
	s.lastRebuild = s.now()
	return nil
}
