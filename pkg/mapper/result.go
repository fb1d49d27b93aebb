package mapper

import (
	"fmt"

	"github.com/dkoosis/gradekit/pkg/pattern"
	"github.com/dkoosis/gradekit/pkg/rubric"
)

// FromResult maps a test-scoring result to a summary, a per-group table
// and the failed test list.
func FromResult(res rubric.Result) pattern.Document {
	passed, total := res.TestCount()
	summary := &pattern.Summary{
		Label: fmt.Sprintf("Score %s / %s", formatScore(res.TotalScore), formatMax(res.MaxScore)),
		Metrics: []pattern.SummaryItem{
			{Label: "Score", Value: formatScore(res.TotalScore) + " / " + formatMax(res.MaxScore), Kind: scoreKind(res.TotalScore, res.MaxScore)},
			{Label: "Tests", Value: fmt.Sprintf("%d/%d passed", passed, total), Kind: testKind(passed, total)},
		},
	}
	if res.Error != "" {
		summary.Metrics = append(summary.Metrics, pattern.SummaryItem{Label: "Error", Value: res.Error, Kind: pattern.KindError})
	}

	doc := pattern.Document{Title: "Test Score Report", Patterns: []pattern.Pattern{summary}}
	if len(res.Groups) > 0 {
		doc.Patterns = append(doc.Patterns, groupTable(res.Groups))
	}
	if list := failureList(res.FailedItems()); list != nil {
		doc.Patterns = append(doc.Patterns, list)
	}
	return doc
}

func groupTable(groups []rubric.GroupResult) *pattern.Table {
	t := &pattern.Table{
		Label:   "Group Scores",
		Columns: []string{"group", "passed", "total", "score", "max score"},
	}
	for _, g := range groups {
		t.Rows = append(t.Rows, pattern.TableRow{
			Cells: []string{
				g.Name,
				fmt.Sprintf("%d", g.Passed),
				fmt.Sprintf("%d", g.Total),
				formatScore(g.Score),
				formatMax(g.MaxScore),
			},
			Kind: groupKind(g),
		})
	}
	return t
}

func groupKind(g rubric.GroupResult) pattern.Kind {
	if g.Total == 0 {
		return pattern.KindInfo
	}
	return testKind(g.Passed, g.Total)
}

func testKind(passed, total int) pattern.Kind {
	switch {
	case total == 0:
		return pattern.KindWarning
	case passed == total:
		return pattern.KindSuccess
	case passed == 0:
		return pattern.KindError
	default:
		return pattern.KindWarning
	}
}
