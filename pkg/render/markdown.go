package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/gradekit/pkg/pattern"
)

// Markdown renders the summary.md layout: a title, bold headline, pipe
// tables and bulleted sections. It emits no ANSI codes.
type Markdown struct{}

// NewMarkdown creates a markdown renderer.
func NewMarkdown() *Markdown {
	return &Markdown{}
}

// Render formats the document as GitHub-flavoured markdown.
func (m *Markdown) Render(doc pattern.Document) string {
	var sb strings.Builder
	if doc.Title != "" {
		fmt.Fprintf(&sb, "# %s\n\n", doc.Title)
	}
	title := cases.Title(language.English)
	for _, p := range doc.Patterns {
		switch v := p.(type) {
		case *pattern.Summary:
			writeSummary(&sb, v)
		case *pattern.Table:
			writeTable(&sb, v, title)
		case *pattern.Leaderboard:
			writeLeaderboard(&sb, v)
		case *pattern.List:
			writeList(&sb, v)
		}
	}
	return sb.String()
}

func writeSummary(sb *strings.Builder, s *pattern.Summary) {
	if s.Label != "" {
		fmt.Fprintf(sb, "**%s**\n\n", s.Label)
	}
	for _, item := range s.Metrics {
		fmt.Fprintf(sb, "- %s: %s\n", item.Label, item.Value)
	}
	if len(s.Metrics) > 0 {
		sb.WriteString("\n")
	}
}

func writeTable(sb *strings.Builder, t *pattern.Table, title cases.Caser) {
	if len(t.Rows) == 0 {
		return
	}
	if t.Label != "" {
		fmt.Fprintf(sb, "## %s\n\n", t.Label)
	}
	headers := make([]string, len(t.Columns))
	rule := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = title.String(c)
		rule[i] = "---"
	}
	writeRow(sb, headers)
	writeRow(sb, rule)
	for _, row := range t.Rows {
		writeRow(sb, row.Cells)
	}
	sb.WriteString("\n")
}

func writeLeaderboard(sb *strings.Builder, l *pattern.Leaderboard) {
	if len(l.Items) == 0 {
		return
	}
	if l.Label != "" {
		fmt.Fprintf(sb, "## %s\n\n", l.Label)
	}
	metric := l.MetricName
	if metric == "" {
		metric = "Value"
	}
	writeRow(sb, []string{"Rank", "Name", metric})
	writeRow(sb, []string{"---", "---", "---"})
	for _, item := range l.Items {
		writeRow(sb, []string{fmt.Sprintf("%d", item.Rank), item.Name, item.Metric})
	}
	if l.TotalCount > len(l.Items) {
		fmt.Fprintf(sb, "\n%d of %d shown\n", len(l.Items), l.TotalCount)
	}
	sb.WriteString("\n")
}

func writeList(sb *strings.Builder, l *pattern.List) {
	if len(l.Items) == 0 {
		return
	}
	if l.Label != "" {
		fmt.Fprintf(sb, "## %s\n\n", l.Label)
	}
	for _, item := range l.Items {
		fmt.Fprintf(sb, "- %s\n", item)
	}
	sb.WriteString("\n")
}

func writeRow(sb *strings.Builder, cells []string) {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	sb.WriteString("| " + strings.Join(escaped, " | ") + " |\n")
}
