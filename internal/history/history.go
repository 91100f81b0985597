// Package history keeps an indexed back/forward stack of visited notes.
package history

import "github.com/fernnotes/fern/internal/vault"

// History records files the user navigated away from. entries[0..index] are
// back targets; anything past index is the forward chain. index is -1 when
// there is nothing to go back to.
type History struct {
	entries []vault.FileRecord
	index   int
}

func New() *History {
	return &History{index: -1}
}

// Push records a fresh (non-history) navigation away from prev: any forward
// entries beyond the current position are discarded, standard browser
// semantics.
func (h *History) Push(prev vault.FileRecord) {
	h.entries = append(h.entries[:h.index+1], prev)
	h.index = len(h.entries) - 1
}

func (h *History) CanGoBack() bool {
	return h.index >= 0
}

// GoBack returns the previous file and steps the index down. The departing
// active file is captured at the head of the forward chain so GoForward can
// restore it; it is discarded again by the next Push.
func (h *History) GoBack(active *vault.FileRecord) (vault.FileRecord, bool) {
	if !h.CanGoBack() {
		return vault.FileRecord{}, false
	}

	if h.index == len(h.entries)-1 && active != nil {
		h.entries = append(h.entries, *active)
	}

	rec := h.entries[h.index]
	h.index--
	return rec, true
}

func (h *History) CanGoForward() bool {
	// Current position is index+1; forward needs one entry beyond it.
	return h.index+2 < len(h.entries)
}

// GoForward returns the next file in the chain and steps the index up.
// Navigating forward never truncates and never pushes.
func (h *History) GoForward() (vault.FileRecord, bool) {
	if !h.CanGoForward() {
		return vault.FileRecord{}, false
	}

	h.index++
	return h.entries[h.index+1], true
}

// Len reports how many entries the stack currently holds.
func (h *History) Len() int {
	return len(h.entries)
}
