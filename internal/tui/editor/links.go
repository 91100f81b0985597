package editor

import (
	"github.com/fernnotes/fern/internal/parser"
	"github.com/fernnotes/fern/internal/vault"
	"github.com/fernnotes/fern/internal/wikilink"
)

// relatedEntry is one outbound reference of the active note, resolved against
// the current index so the panel can style broken targets.
type relatedEntry struct {
	Target  string
	Display string
	Exists  bool
	File    *vault.FileRecord
}

func collectRelated(buffer string, idx *vault.Index) []relatedEntry {
	targets := parser.Outbound([]byte(buffer))
	if len(targets) == 0 {
		return nil
	}

	entries := make([]relatedEntry, 0, len(targets))
	for _, target := range targets {
		res := wikilink.Resolve(target, idx)
		entries = append(entries, relatedEntry{
			Target:  target,
			Display: wikilink.Basename(target),
			Exists:  res.Exists,
			File:    res.File,
		})
	}
	return entries
}
