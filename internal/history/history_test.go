package history

import (
	"testing"

	"github.com/fernnotes/fern/internal/vault"
)

func rec(rel string) vault.FileRecord {
	return vault.FileRecord{Name: rel, AbsolutePath: "/vault/" + rel, RelativePath: rel}
}

func TestEmptyHistory(t *testing.T) {
	h := New()

	if h.CanGoBack() || h.CanGoForward() {
		t.Fatal("empty history should allow neither direction")
	}
	if _, ok := h.GoBack(nil); ok {
		t.Fatal("GoBack on empty history should fail")
	}
	if _, ok := h.GoForward(); ok {
		t.Fatal("GoForward on empty history should fail")
	}
}

func TestFreshNavigationDisablesForward(t *testing.T) {
	h := New()
	h.Push(rec("A.md"))

	if !h.CanGoBack() {
		t.Fatal("expected back to be available after a push")
	}
	if h.CanGoForward() {
		t.Fatal("forward must be unavailable immediately after a fresh navigation")
	}
}

func TestBackThenForwardRoundTrip(t *testing.T) {
	h := New()
	a, b, c := rec("A.md"), rec("B.md"), rec("C.md")

	// Visited A -> B -> C via links.
	h.Push(a)
	h.Push(b)

	active := c
	got, ok := h.GoBack(&active)
	if !ok || got.RelativePath != "B.md" {
		t.Fatalf("expected back to B.md, got %+v ok=%v", got, ok)
	}

	active = got
	got, ok = h.GoBack(&active)
	if !ok || got.RelativePath != "A.md" {
		t.Fatalf("expected back to A.md, got %+v ok=%v", got, ok)
	}

	got, ok = h.GoForward()
	if !ok || got.RelativePath != "B.md" {
		t.Fatalf("expected forward to B.md, got %+v ok=%v", got, ok)
	}

	got, ok = h.GoForward()
	if !ok || got.RelativePath != "C.md" {
		t.Fatalf("expected forward to C.md, got %+v ok=%v", got, ok)
	}

	if h.CanGoForward() {
		t.Fatal("forward chain should be exhausted at the tip")
	}
}

func TestPushMidStackTruncatesForwardEntries(t *testing.T) {
	h := New()
	a, b, c := rec("A.md"), rec("B.md"), rec("C.md")

	h.Push(a)
	h.Push(b)

	active := c
	if _, ok := h.GoBack(&active); !ok {
		t.Fatal("expected back to succeed")
	}

	// Fresh link click from B: the stale forward entry (C) must be
	// discarded.
	h.Push(b)

	if h.CanGoForward() {
		t.Fatal("forward entries must be discarded by a fresh navigation")
	}
	if h.Len() != 2 {
		t.Fatalf("expected stack [A, B], got %d entries", h.Len())
	}

	got, ok := h.GoBack(nil)
	if !ok || got.RelativePath != "B.md" {
		t.Fatalf("expected back to B.md after truncation, got %+v ok=%v", got, ok)
	}
}

func TestRepeatedBackDoesNotDuplicateTip(t *testing.T) {
	h := New()
	a, b := rec("A.md"), rec("B.md")

	h.Push(a)

	active := b
	if _, ok := h.GoBack(&active); !ok {
		t.Fatal("expected back to succeed")
	}
	if h.Len() != 2 {
		t.Fatalf("expected tip capture to yield 2 entries, got %d", h.Len())
	}

	got, ok := h.GoForward()
	if !ok || got.RelativePath != "B.md" {
		t.Fatalf("expected forward to restore B.md, got %+v ok=%v", got, ok)
	}

	active = b
	if _, ok := h.GoBack(&active); !ok {
		t.Fatal("expected second back to succeed")
	}
	if h.Len() != 2 {
		t.Fatalf("tip must not be captured twice, got %d entries", h.Len())
	}
}
