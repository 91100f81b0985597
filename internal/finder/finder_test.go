package finder

import (
	"testing"

	"github.com/fernnotes/fern/internal/vault"
)

func testIndex(rels ...string) *vault.Index {
	records := make([]vault.FileRecord, 0, len(rels))
	for _, rel := range rels {
		records = append(records, vault.FileRecord{
			Name:         rel,
			AbsolutePath: "/vault/" + rel,
			RelativePath: rel,
		})
	}
	return vault.NewIndex("/vault", records)
}

func TestScoreEmptyQueryIsNeutral(t *testing.T) {
	if got := Score("", "anything.md"); got != 1 {
		t.Fatalf("expected neutral score 1, got %v", got)
	}
}

func TestScoreSubstringOutranksFuzzy(t *testing.T) {
	substring := Score("note", "my-notes.md")
	fuzzy := Score("nts", "my-notes.md")

	if substring < 100 {
		t.Fatalf("expected substring score >= 100, got %v", substring)
	}
	if fuzzy < 0 {
		t.Fatalf("expected fuzzy hit, got %v", fuzzy)
	}
	if substring <= fuzzy {
		t.Fatalf("substring %v should outrank fuzzy %v", substring, fuzzy)
	}
}

func TestScoreSubstringCoverageBonus(t *testing.T) {
	tight := Score("note", "note.md")
	loose := Score("note", "very/long/path/to/some/notes.md")

	if tight <= loose {
		t.Fatalf("expected tighter coverage to score higher: %v vs %v", tight, loose)
	}
}

func TestScoreConsecutiveRunsBeatScatteredHits(t *testing.T) {
	// Neither candidate contains "abf" contiguously, so both take the
	// fuzzy path; the first has an adjacent "ab" run.
	consecutive := Score("abf", "xabxxf.md")
	scattered := Score("abf", "a1b2f3.zz")

	if consecutive < 0 || scattered < 0 {
		t.Fatalf("expected both to match: %v, %v", consecutive, scattered)
	}
	if consecutive <= scattered {
		t.Fatalf("consecutive %v should beat scattered %v", consecutive, scattered)
	}
}

func TestScoreUnconsumedQueryIsNoMatch(t *testing.T) {
	if got := Score("zzz", "note.md"); got != NoMatch {
		t.Fatalf("expected NoMatch, got %v", got)
	}
}

func TestRankEmptyQueryPreservesIndexOrder(t *testing.T) {
	idx := testIndex("a.md", "b.md", "c.md")

	got := Rank("", idx)
	if len(got) != 3 {
		t.Fatalf("expected all records, got %+v", got)
	}
	for i, rel := range []string{"a.md", "b.md", "c.md"} {
		if got[i].RelativePath != rel {
			t.Fatalf("expected order preserved, got %+v", got)
		}
	}
}

func TestRankFiltersAndSortsDescending(t *testing.T) {
	idx := testIndex("daily/log.md", "ideas.md", "projects/fern.md")

	got := Rank("fern", idx)
	if len(got) != 1 || got[0].RelativePath != "projects/fern.md" {
		t.Fatalf("expected only projects/fern.md, got %+v", got)
	}

	got = Rank("da", idx)
	if len(got) != 2 {
		t.Fatalf("expected two hits for 'da', got %+v", got)
	}
	if got[0].RelativePath != "daily/log.md" {
		t.Fatalf("expected substring hit ranked first, got %+v", got)
	}
}

func TestRankStableForEqualScores(t *testing.T) {
	idx := testIndex("na.md", "nb.md")

	got := Rank("n", idx)
	if len(got) != 2 {
		t.Fatalf("expected two hits, got %+v", got)
	}
	if got[0].RelativePath != "na.md" || got[1].RelativePath != "nb.md" {
		t.Fatalf("expected stable order for ties, got %+v", got)
	}
}
