package mapper

import (
	"fmt"

	"github.com/dkoosis/gradekit/pkg/pattern"
	"github.com/dkoosis/gradekit/pkg/rank"
)

// FromStandings maps ranked entries to a leaderboard. A top of zero or
// less keeps every entry; otherwise ties at the cut are kept.
func FromStandings(label string, entries []rank.Entry, top int) pattern.Document {
	shown := entries
	if top > 0 {
		shown = rank.Top(entries, top)
	}
	lb := &pattern.Leaderboard{
		Label:      label,
		MetricName: "Score",
		TotalCount: len(entries),
	}
	for _, e := range shown {
		name := e.Name
		if name == "" {
			name = e.ID
		}
		item := pattern.LeaderboardItem{
			Rank:   e.Rank,
			Name:   name,
			Metric: formatScore(e.Score),
			Value:  e.Score,
		}
		if e.Name != "" && e.ID != "" {
			item.Context = e.ID
		}
		lb.Items = append(lb.Items, item)
	}
	return pattern.Document{
		Title: label,
		Patterns: []pattern.Pattern{
			&pattern.Summary{
				Label: fmt.Sprintf("%d ranked, %d distinct ranks", len(entries), rank.Distinct(entries)),
			},
			lb,
		},
	}
}
