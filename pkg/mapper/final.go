package mapper

import (
	"fmt"
	"strings"

	"github.com/dkoosis/gradekit/pkg/grade"
	"github.com/dkoosis/gradekit/pkg/pattern"
)

// FromFinal maps an aggregated grade to a summary, the dimension table,
// per-dimension criterion lists and the flags.
func FromFinal(f grade.Final) pattern.Document {
	summary := &pattern.Summary{
		Label: fmt.Sprintf("Final %s / %s", formatScore(f.TotalScore), formatMax(f.MaxScore)),
		Metrics: []pattern.SummaryItem{
			{Label: "Score", Value: formatScore(f.TotalScore) + " / " + formatMax(f.MaxScore), Kind: scoreKind(f.TotalScore, f.MaxScore)},
		},
	}
	if f.Confidence != nil {
		kind := pattern.KindSuccess
		if f.NeedsReview() {
			kind = pattern.KindWarning
		}
		summary.Metrics = append(summary.Metrics, pattern.SummaryItem{
			Label: "Confidence", Value: fmt.Sprintf("%.2f", *f.Confidence), Kind: kind,
		})
	}

	table := &pattern.Table{Label: "Dimensions", Columns: []string{"dimension", "score", "max score", "notes"}}
	doc := pattern.Document{Title: "Final Grade Report", Patterns: []pattern.Pattern{summary, table}}

	var failed []string
	for _, d := range f.Breakdown {
		table.Rows = append(table.Rows, pattern.TableRow{
			Cells: []string{d.Name, formatScore(d.Score), formatMax(d.MaxScore), strings.Join(d.Flags, ", ")},
			Kind:  scoreKind(d.Score, d.MaxScore),
		})
		for _, g := range d.Groups {
			failed = append(failed, g.FailedItems...)
		}
		if len(d.Criteria) == 0 {
			continue
		}
		list := &pattern.List{Label: d.Name, Kind: pattern.KindInfo}
		for _, c := range d.Criteria {
			item := fmt.Sprintf("%s: %s", c.ID, formatMax(c.Score))
			if c.Reason != "" {
				item += " (" + c.Reason + ")"
			}
			list.Items = append(list.Items, item)
		}
		doc.Patterns = append(doc.Patterns, list)
	}

	if list := failureList(failed); list != nil {
		doc.Patterns = append(doc.Patterns, list)
	}
	if len(f.Flags) > 0 {
		doc.Patterns = append(doc.Patterns, &pattern.List{Label: "Flags", Items: f.Flags, Kind: pattern.KindWarning})
	}
	return doc
}
