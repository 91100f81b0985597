package index

import (
	"errors"
	"testing"
	"time"

	"github.com/fernnotes/fern/internal/vault"
)

func fakeScan(records ...string) func(string) (*vault.Index, error) {
	return func(root string) (*vault.Index, error) {
		recs := make([]vault.FileRecord, 0, len(records))
		for _, rel := range records {
			recs = append(recs, vault.FileRecord{
				Name:         rel,
				AbsolutePath: root + "/" + rel,
				RelativePath: rel,
			})
		}
		return vault.NewIndex(root, recs), nil
	}
}

func TestAcquireSnapshotBuildsOnFirstUse(t *testing.T) {
	s := NewService("/vault")
	s.scan = fakeScan("a.md")

	idx, err := s.AcquireSnapshot()
	if err != nil {
		t.Fatalf("AcquireSnapshot returned error: %v", err)
	}
	if idx.Len() != 1 {
		t.Fatalf("expected one record, got %d", idx.Len())
	}
}

func TestQueueUpdateForcesFullRescan(t *testing.T) {
	s := NewService("/vault")
	scans := 0
	s.scan = func(root string) (*vault.Index, error) {
		scans++
		return fakeScan("a.md")(root)
	}

	if _, err := s.AcquireSnapshot(); err != nil {
		t.Fatalf("first snapshot: %v", err)
	}
	if _, err := s.AcquireSnapshot(); err != nil {
		t.Fatalf("second snapshot: %v", err)
	}
	if scans != 1 {
		t.Fatalf("expected one scan for fresh index, got %d", scans)
	}

	s.QueueUpdate("a.md")
	if s.Stats().Pending != 1 {
		t.Fatalf("expected pending update, got %+v", s.Stats())
	}

	if _, err := s.AcquireSnapshot(); err != nil {
		t.Fatalf("post-update snapshot: %v", err)
	}
	if scans != 2 {
		t.Fatalf("expected rescan after queued update, got %d scans", scans)
	}
	if s.Stats().Pending != 0 {
		t.Fatalf("pending should reset after rescan, got %+v", s.Stats())
	}
}

func TestSnapshotRefreshesWhenAged(t *testing.T) {
	s := NewService("/vault")
	scans := 0
	s.scan = func(root string) (*vault.Index, error) {
		scans++
		return fakeScan()(root)
	}

	current := time.Now()
	s.now = func() time.Time { return current }

	if _, err := s.AcquireSnapshot(); err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	current = current.Add(2 * time.Hour)
	if _, err := s.AcquireSnapshot(); err != nil {
		t.Fatalf("aged snapshot: %v", err)
	}
	if scans != 2 {
		t.Fatalf("expected rescan after max age, got %d scans", scans)
	}
}

func TestCloseRejectsFurtherUse(t *testing.T) {
	s := NewService("/vault")
	s.scan = fakeScan()

	if err := s.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("repeated Close returned error: %v", err)
	}

	if _, err := s.AcquireSnapshot(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}

	// Safe no-op after close.
	s.QueueUpdate("a.md")
}
