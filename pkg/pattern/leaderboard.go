package pattern

// Leaderboard is a ranked list of entries by one metric.
type Leaderboard struct {
	Label      string
	MetricName string // e.g. "Score"
	Items      []LeaderboardItem
	TotalCount int // total before filtering to top N
}

// LeaderboardItem is a single ranked entry.
type LeaderboardItem struct {
	Rank    int
	Name    string
	Metric  string  // formatted value
	Value   float64 // numeric value the rank came from
	Context string  // optional extra context, such as the student ID
}

func (l *Leaderboard) Type() PatternType { return PatternTypeLeaderboard }
