package parser

import (
	"testing"
)

func TestOutboundCollectsWikilinksAndMarkdownLinks(t *testing.T) {
	source := []byte(`# Note

See [[Alpha]] and [[sub/Beta|aliased]].

Inline [doc](guides/setup.md) and external [site](https://example.com)
plus [mail](mailto:a@b.c).
`)

	got := Outbound(source)
	want := []string{"Alpha", "guides/setup.md", "sub/Beta"}

	if len(got) != len(want) {
		t.Fatalf("expected targets %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected targets %v, got %v", want, got)
		}
	}
}

func TestOutboundDeduplicatesTargets(t *testing.T) {
	source := []byte("[[Alpha]] then [[Alpha]] again")

	got := Outbound(source)
	if len(got) != 1 || got[0] != "Alpha" {
		t.Fatalf("expected deduplicated [Alpha], got %v", got)
	}
}

func TestOutboundEmptyBuffer(t *testing.T) {
	if got := Outbound(nil); got != nil {
		t.Fatalf("expected nil for empty buffer, got %v", got)
	}
}

func TestParseFrontMatter(t *testing.T) {
	content := []byte("---\ntitle: Project Plan\ntags:\n  - work\n  - plans\n---\n\n# heading\n")

	title, tags := ParseFrontMatter(content)
	if title != "Project Plan" {
		t.Errorf("title = %q, want %q", title, "Project Plan")
	}
	if len(tags) != 2 || tags[0] != "work" || tags[1] != "plans" {
		t.Errorf("tags = %v, want [work plans]", tags)
	}
}

func TestParseFrontMatterAbsent(t *testing.T) {
	title, tags := ParseFrontMatter([]byte("# no front matter\n"))
	if title != "" || tags != nil {
		t.Errorf("got %q %v, want empty", title, tags)
	}
}
