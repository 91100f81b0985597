// Package fzf wraps the terminal fuzzy finder over a vault index snapshot,
// with a rendered markdown preview pane.
package fzf

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/muesli/termenv"
	"github.com/spf13/viper"

	"github.com/fernnotes/fern/internal/parser"
	"github.com/fernnotes/fern/internal/vault"
)

var ErrNoSelection = errors.New("no note selected")

type FuzzyFinder struct {
	Header  string
	records []vault.FileRecord
}

func NewFuzzyFinder(idx *vault.Index, header string) *FuzzyFinder {
	return &FuzzyFinder{Header: header, records: idx.Records()}
}

// Run opens the picker, optionally pre-seeded with a query, and returns the
// chosen note. Aborting the picker returns ErrNoSelection.
func (f *FuzzyFinder) Run(query string) (vault.FileRecord, error) {
	if len(f.records) == 0 {
		return vault.FileRecord{}, errors.New("vault has no notes")
	}

	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderMarkdownPreview),
	}
	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}
	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	labels := make([]string, len(f.records))
	for i, rec := range f.records {
		labels[i] = f.label(rec)
	}

	idx, err := fuzzyfinder.Find(f.records, func(i int) string {
		return labels[i]
	}, options...)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return vault.FileRecord{}, ErrNoSelection
		}
		return vault.FileRecord{}, fmt.Errorf("error selecting note: %w", err)
	}

	return f.records[idx], nil
}

func (f *FuzzyFinder) label(rec vault.FileRecord) string {
	title := rec.Name
	var tags []string

	if content, err := os.ReadFile(rec.AbsolutePath); err == nil {
		if t, parsed := parser.ParseFrontMatter(content); t != "" {
			title, tags = t, parsed
		}
	}

	if len(tags) == 0 {
		return fmt.Sprintf("%s (%s)", title, rec.RelativePath)
	}
	return fmt.Sprintf("%s [Tags: %s] (%s)", title, strings.Join(tags, ", "), rec.RelativePath)
}

func (f *FuzzyFinder) renderMarkdownPreview(i, w, h int) string {
	if i == -1 {
		return ""
	}

	content, err := os.ReadFile(f.records[i].AbsolutePath)
	if err != nil {
		return "Error reading file"
	}

	style := "dracula"
	if viper.GetString("theme") == "light" {
		style = "light"
	}
	r, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(100),
		glamour.WithColorProfile(termenv.ANSI256),
	)

	markdown, err := r.Render(string(content))
	if err != nil {
		return "Error rendering markdown"
	}

	return markdown
}
