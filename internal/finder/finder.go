// Package finder ranks vault file records against interactive queries.
package finder

import (
	"sort"
	"strings"

	"github.com/fernnotes/fern/internal/vault"
)

// NoMatch is the sentinel score for candidates the query does not match.
const NoMatch = -1

// Score rates a candidate against a query; higher is better. An empty query
// matches everything with a neutral score so index order is preserved.
// Contiguous substring hits always outrank fuzzy subsequence hits, with a
// bonus for queries that cover more of the candidate. The fuzzy pass consumes
// query characters greedily left to right and rewards consecutive runs over
// scattered hits; a query that cannot be fully consumed scores NoMatch.
func Score(query, candidate string) float64 {
	if query == "" {
		return 1
	}
	if candidate == "" {
		return NoMatch
	}

	loweredQuery := strings.ToLower(query)
	loweredCandidate := strings.ToLower(candidate)

	if strings.Contains(loweredCandidate, loweredQuery) {
		coverage := float64(len(loweredQuery)) / float64(len(loweredCandidate))
		return 100 + coverage*50
	}

	queryRunes := []rune(loweredQuery)
	var (
		score float64
		qi    int
		run   int
	)
	for _, ch := range loweredCandidate {
		if qi < len(queryRunes) && ch == queryRunes[qi] {
			qi++
			run++
			if run > 1 {
				score += float64(2 * run)
			}
		} else {
			run = 0
		}
	}

	if qi < len(queryRunes) {
		return NoMatch
	}
	return score
}

// Rank matches the query against every record's relative path and returns
// the hits ordered best first. Ties keep their original index order; callers
// apply any top-N limiting themselves.
func Rank(query string, idx *vault.Index) []vault.FileRecord {
	if idx == nil {
		return nil
	}

	type scored struct {
		rec   vault.FileRecord
		score float64
	}

	hits := make([]scored, 0, idx.Len())
	for _, rec := range idx.Records() {
		s := Score(query, rec.RelativePath)
		if s < 0 {
			continue
		}
		hits = append(hits, scored{rec: rec, score: s})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	out := make([]vault.FileRecord, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.rec)
	}
	return out
}
