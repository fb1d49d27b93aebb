// Package mapper converts scoring results into render patterns.
package mapper

import (
	"fmt"
	"strconv"

	"github.com/dkoosis/gradekit/pkg/pattern"
)

// MaxListedFailures caps the failed-test list of a summary.
const MaxListedFailures = 20

// formatScore prints a score with two decimals.
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatMax prints a maximum without trailing zeros.
func formatMax(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func scoreKind(score, maxScore float64) pattern.Kind {
	switch {
	case maxScore <= 0:
		return pattern.KindInfo
	case score >= maxScore:
		return pattern.KindSuccess
	case score <= 0:
		return pattern.KindError
	default:
		return pattern.KindWarning
	}
}

// failureList lists up to MaxListedFailures items and notes the rest.
func failureList(items []string) *pattern.List {
	if len(items) == 0 {
		return nil
	}
	list := &pattern.List{Label: "Failed Tests", Kind: pattern.KindError}
	if len(items) > MaxListedFailures {
		list.Items = append(list.Items, items[:MaxListedFailures]...)
		list.Items = append(list.Items, fmt.Sprintf("... %d more failed tests", len(items)-MaxListedFailures))
		return list
	}
	list.Items = append(list.Items, items...)
	return list
}
