// Package parser extracts outbound references from a note buffer.
package parser

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/fernnotes/fern/internal/wikilink"
)

// Outbound returns the unique link targets referenced by the buffer, sorted
// for stable display: wikilink targets plus inline markdown destinations.
// External destinations (schemes, mailto) are excluded.
func Outbound(source []byte) []string {
	targets := make(map[string]struct{})

	for _, l := range wikilink.Parse(string(source)) {
		targets[l.Target] = struct{}{}
	}

	parser := goldmark.DefaultParser()
	reader := text.NewReader(source)
	document := parser.Parse(reader)

	ast.Walk(document, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if link, ok := n.(*ast.Link); ok {
			dest := strings.TrimSpace(string(link.Destination))
			if dest != "" && !isExternal(dest) {
				targets[dest] = struct{}{}
			}
		}
		return ast.WalkContinue, nil
	})

	if len(targets) == 0 {
		return nil
	}

	out := make([]string, 0, len(targets))
	for t := range targets {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func isExternal(dest string) bool {
	lowered := strings.ToLower(dest)
	return strings.Contains(lowered, "://") || strings.HasPrefix(lowered, "mailto:")
}
