// Package rank assigns competition ranks ("1224") to score lists.
package rank

import (
	"math"
	"sort"
)

// ScoreRecord is one scored entity. A nil or NaN Score means the entity has
// no score; it is left out of the ranking rather than ranked as zero.
type ScoreRecord struct {
	ID    string
	Name  string
	Score *float64
}

// Entry is a ranked record.
type Entry struct {
	Rank  int     `json:"rank"`
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Value returns a pointer to v for building ScoreRecords.
func Value(v float64) *float64 { return &v }

// Has reports whether the record carries a usable score.
func (r ScoreRecord) Has() bool {
	return r.Score != nil && !math.IsNaN(*r.Score)
}

// Rank orders records by descending score and assigns competition ranks:
// equal scores share a rank and the next distinct score skips the slots the
// tie consumed. Ties keep their input order.
func Rank(records []ScoreRecord) []Entry {
	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		if !r.Has() {
			continue
		}
		entries = append(entries, Entry{ID: r.ID, Name: r.Name, Score: *r.Score})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	for i := range entries {
		if i > 0 && entries[i].Score == entries[i-1].Score {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = i + 1
	}
	return entries
}

// Distinct returns the number of distinct rank values in entries.
func Distinct(entries []Entry) int {
	seen := make(map[int]struct{}, len(entries))
	for _, e := range entries {
		seen[e.Rank] = struct{}{}
	}
	return len(seen)
}

// Top returns the entries whose rank is at most n. Ties at the cut are kept.
func Top(entries []Entry, n int) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Rank > n {
			break
		}
		out = append(out, e)
	}
	return out
}
