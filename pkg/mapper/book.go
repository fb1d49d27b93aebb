package mapper

import (
	"fmt"

	"github.com/dkoosis/gradekit/pkg/gradebook"
	"github.com/dkoosis/gradekit/pkg/pattern"
)

// FromBook maps grade-book statistics to a per-subject table of averages
// and level counts, plus the data issues found while loading.
func FromBook(b *gradebook.Book) pattern.Document {
	cols := []string{"subject", "average"}
	for _, l := range gradebook.Levels {
		cols = append(cols, string(l))
	}
	table := &pattern.Table{Label: "Subjects", Columns: cols}

	for _, subject := range b.Subjects() {
		avg := "-"
		if v, ok := b.Average(subject); ok {
			avg = formatScore(v)
		}
		row := pattern.TableRow{Cells: []string{subject, avg}, Kind: pattern.KindInfo}
		for _, bucket := range b.Distribution(subject) {
			row.Cells = append(row.Cells, fmt.Sprintf("%d", bucket.Count))
		}
		table.Rows = append(table.Rows, row)
	}

	summary := &pattern.Summary{
		Label: fmt.Sprintf("%d students, %d subjects", b.Len(), len(b.Subjects())),
		Metrics: []pattern.SummaryItem{
			{Label: "Students", Value: fmt.Sprintf("%d", b.Len()), Kind: pattern.KindInfo},
		},
	}
	doc := pattern.Document{Title: "Grade Book", Patterns: []pattern.Pattern{summary, table}}

	if issues := b.Issues(); len(issues) > 0 {
		summary.Metrics = append(summary.Metrics, pattern.SummaryItem{
			Label: "Issues", Value: fmt.Sprintf("%d", len(issues)), Kind: pattern.KindWarning,
		})
		list := &pattern.List{Label: "Data Issues", Kind: pattern.KindWarning}
		for _, i := range issues {
			list.Items = append(list.Items, i.String())
		}
		doc.Patterns = append(doc.Patterns, list)
	}
	return doc
}
