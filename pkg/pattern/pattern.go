// Package pattern defines the semantic data types behind gradekit's text
// summaries. Patterns are pure data; renderers decide presentation.
package pattern

// PatternType identifies the kind of pattern.
type PatternType string

const (
	PatternTypeSummary     PatternType = "summary"
	PatternTypeTable       PatternType = "table"
	PatternTypeLeaderboard PatternType = "leaderboard"
	PatternTypeList        PatternType = "list"
)

// Kind colours a value: success, error, warning or info.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Pattern is the interface all patterns implement.
type Pattern interface {
	Type() PatternType
}

// Document is a titled sequence of patterns rendered together.
type Document struct {
	Title    string
	Patterns []Pattern
}
