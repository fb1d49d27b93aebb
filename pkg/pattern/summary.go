package pattern

// Summary is a headline with labelled metrics.
type Summary struct {
	Label   string
	Metrics []SummaryItem
}

// SummaryItem is a single metric in a summary.
type SummaryItem struct {
	Label string // e.g. "Score", "Tests"
	Value string // formatted value
	Kind  Kind
}

func (s *Summary) Type() PatternType { return PatternTypeSummary }
