// Package wikilink parses inline [[target]] references and resolves them
// against a vault index.
package wikilink

import (
	"regexp"
	"strings"

	"github.com/fernnotes/fern/internal/constants"
	"github.com/fernnotes/fern/internal/vault"
)

// Link is one parsed [[target]] or [[target|alias]] reference.
type Link struct {
	Target string
	Alias  string
}

// Resolution is the total, never-failing outcome of resolving a link target.
// A missing file is a renderable "broken link" state rather than an error,
// because links are re-resolved continuously while the user types.
type Resolution struct {
	Target string
	File   *vault.FileRecord
	Exists bool
}

var linkPattern = regexp.MustCompile(`\[\[([^\[\]|]+)(?:\|([^\[\]]*))?\]\]`)

// Parse extracts every wikilink from the given buffer in document order.
func Parse(content string) []Link {
	matches := linkPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	links := make([]Link, 0, len(matches))
	for _, m := range matches {
		target := strings.TrimSpace(m[1])
		if target == "" {
			continue
		}
		links = append(links, Link{Target: target, Alias: strings.TrimSpace(m[2])})
	}
	return links
}

// DisplayText returns the rendered label for the link: the alias when one was
// supplied, otherwise the last path segment of the target.
func (l Link) DisplayText() string {
	if l.Alias != "" {
		return l.Alias
	}
	return Basename(l.Target)
}

// At returns the wikilink whose source span in line contains the byte column
// col, if any. The span includes the surrounding bracket syntax, so a cursor
// anywhere on "[[target|alias]]" selects that link.
func At(line string, col int) (Link, bool) {
	if col < 0 || col > len(line) {
		return Link{}, false
	}

	for _, span := range linkPattern.FindAllStringSubmatchIndex(line, -1) {
		if col < span[0] || col >= span[1] {
			continue
		}

		target := strings.TrimSpace(line[span[2]:span[3]])
		if target == "" {
			return Link{}, false
		}

		link := Link{Target: target}
		if span[4] >= 0 {
			link.Alias = strings.TrimSpace(line[span[4]:span[5]])
		}
		return link, true
	}

	return Link{}, false
}

// Basename returns the last forward-slash segment of a link target.
func Basename(target string) string {
	trimmed := strings.TrimSpace(target)
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// Resolve maps a textual link target to a file record from the index. The
// match relaxes progressively: exact stripped file name, case-insensitive
// file name, then (for targets containing a path separator) exact and
// case-insensitive relative path with the note extension appended if absent.
// Bare-name matches deliberately win over path matches even when the target
// contains a folder, matching long-standing behavior of ambiguous vaults.
func Resolve(target string, idx *vault.Index) Resolution {
	trimmed := strings.TrimSpace(target)
	res := Resolution{Target: trimmed}
	if trimmed == "" || idx == nil || idx.IsEmpty() {
		return res
	}

	records := idx.Records()

	for i := range records {
		if strippedName(records[i]) == trimmed {
			res.File = &records[i]
			res.Exists = true
			return res
		}
	}

	for i := range records {
		if strings.EqualFold(strippedName(records[i]), trimmed) {
			res.File = &records[i]
			res.Exists = true
			return res
		}
	}

	if strings.Contains(trimmed, "/") {
		want := trimmed
		if !strings.HasSuffix(strings.ToLower(want), constants.NoteExtension) {
			want += constants.NoteExtension
		}

		for i := range records {
			if records[i].RelativePath == want {
				res.File = &records[i]
				res.Exists = true
				return res
			}
		}
		for i := range records {
			if strings.EqualFold(records[i].RelativePath, want) {
				res.File = &records[i]
				res.Exists = true
				return res
			}
		}
	}

	return res
}

func strippedName(rec vault.FileRecord) string {
	if n := len(rec.Name) - len(constants.NoteExtension); n > 0 &&
		strings.EqualFold(rec.Name[n:], constants.NoteExtension) {
		return rec.Name[:n]
	}
	return rec.Name
}
