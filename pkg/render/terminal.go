package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/gradekit/pkg/pattern"
)

const maxCellWidth = 48

// Terminal renders patterns as styled terminal output via lipgloss.
// Column widths are measured in display cells so CJK names line up.
type Terminal struct {
	theme Theme
	width int
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width}
}

// Render formats the document for terminal display.
func (t *Terminal) Render(doc pattern.Document) string {
	var sections []string
	if doc.Title != "" {
		sections = append(sections, t.theme.Bold.Render(doc.Title)+"\n"+
			t.theme.Muted.Render(strings.Repeat("─", min(runewidth.StringWidth(doc.Title), t.width)))+"\n")
	}
	title := cases.Title(language.English)
	for _, p := range doc.Patterns {
		if s := t.renderOne(p, title); s != "" {
			sections = append(sections, s)
		}
	}
	return strings.Join(sections, "\n")
}

func (t *Terminal) renderOne(p pattern.Pattern, title cases.Caser) string {
	switch v := p.(type) {
	case *pattern.Summary:
		return t.renderSummary(v)
	case *pattern.Table:
		return t.renderTable(v, title)
	case *pattern.Leaderboard:
		return t.renderLeaderboard(v)
	case *pattern.List:
		return t.renderList(v)
	default:
		return ""
	}
}

func (t *Terminal) renderSummary(s *pattern.Summary) string {
	var sb strings.Builder
	if s.Label != "" {
		sb.WriteString(t.theme.Bold.Render(s.Label))
		sb.WriteString("\n")
	}
	for _, m := range s.Metrics {
		icon, style := t.iconStyle(m.Kind)
		sb.WriteString("  ")
		sb.WriteString(style.Render(icon + " " + m.Label + ": " + m.Value))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderTable(tbl *pattern.Table, title cases.Caser) string {
	if len(tbl.Rows) == 0 {
		return ""
	}
	widths := make([]int, len(tbl.Columns))
	headers := make([]string, len(tbl.Columns))
	for i, c := range tbl.Columns {
		headers[i] = title.String(c)
		widths[i] = runewidth.StringWidth(headers[i])
	}
	for _, row := range tbl.Rows {
		for i, cell := range row.Cells {
			if i < len(widths) {
				widths[i] = max(widths[i], min(runewidth.StringWidth(cell), maxCellWidth))
			}
		}
	}

	var sb strings.Builder
	if tbl.Label != "" {
		sb.WriteString(t.theme.Bold.Render(tbl.Label))
		sb.WriteString("\n")
	}
	sb.WriteString("    ")
	sb.WriteString(t.theme.Muted.Render(joinCells(headers, widths)))
	sb.WriteString("\n")
	for _, row := range tbl.Rows {
		icon, style := t.iconStyle(row.Kind)
		sb.WriteString("  ")
		sb.WriteString(style.Render(icon))
		sb.WriteString(" ")
		sb.WriteString(joinCells(row.Cells, widths))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderLeaderboard(l *pattern.Leaderboard) string {
	if len(l.Items) == 0 {
		return ""
	}
	var sb strings.Builder
	if l.Label != "" {
		header := l.Label
		if l.TotalCount > len(l.Items) {
			header += fmt.Sprintf(" (top %d of %d)", len(l.Items), l.TotalCount)
		}
		sb.WriteString(t.theme.Bold.Render(header))
		sb.WriteString("\n")
	}

	maxName, maxMetric := 0, 0
	for _, item := range l.Items {
		maxName = max(maxName, min(runewidth.StringWidth(item.Name), maxCellWidth))
		maxMetric = max(maxMetric, runewidth.StringWidth(item.Metric))
	}

	for _, item := range l.Items {
		sb.WriteString("  ")
		sb.WriteString(t.theme.Muted.Render(fmt.Sprintf("%3d. ", item.Rank)))
		sb.WriteString(t.theme.Primary.Render(padRight(item.Name, maxName)))
		sb.WriteString("  ")
		sb.WriteString(t.theme.Warning.Render(padLeft(item.Metric, maxMetric)))
		if item.Context != "" {
			sb.WriteString("  ")
			sb.WriteString(t.theme.Muted.Render(item.Context))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderList(l *pattern.List) string {
	if len(l.Items) == 0 {
		return ""
	}
	var sb strings.Builder
	if l.Label != "" {
		_, style := t.iconStyle(l.Kind)
		sb.WriteString(style.Render(l.Label))
		sb.WriteString("\n")
	}
	for _, item := range l.Items {
		sb.WriteString("  ")
		sb.WriteString(t.theme.Muted.Render(t.theme.Icons.Bullet))
		sb.WriteString(" ")
		sb.WriteString(item)
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) iconStyle(kind pattern.Kind) (string, lipgloss.Style) {
	switch kind {
	case pattern.KindSuccess:
		return t.theme.Icons.Pass, t.theme.Success
	case pattern.KindError:
		return t.theme.Icons.Fail, t.theme.Error
	case pattern.KindWarning:
		return t.theme.Icons.Warn, t.theme.Warning
	default:
		return t.theme.Icons.Info, t.theme.Primary
	}
}

// joinCells pads every cell to its column width; the last column is not
// padded so rows carry no trailing blanks.
func joinCells(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		switch {
		case i >= len(widths):
			parts[i] = c
		case i == len(cells)-1:
			parts[i] = runewidth.Truncate(c, widths[i], "...")
		default:
			parts[i] = padRight(c, widths[i])
		}
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

// padRight truncates or pads s to exactly width display cells.
func padRight(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "..."), width)
}

func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}
