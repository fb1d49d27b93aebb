// Package rubric scores test-result records against a set of weighted groups.
//
// Records are classified into groups by case-insensitive pattern search, each
// group earns its maximum scaled by pass rate, and the group scores compose
// into a bounded total. Every operation is a pure function of its inputs.
package rubric

import (
	"fmt"
	"math"
	"regexp"
)

// MaxFailedItems caps the failed-test identifiers kept per group.
// It bounds presentation only; scoring counts every record.
const MaxFailedItems = 10

// TestRecord is one executed test as reported by a test runner.
type TestRecord struct {
	GroupKey string // e.g. "com.vibevault.core.CoreServiceTest.createPlaylist"
	Passed   bool
	Skipped  bool
}

// NewTestRecord builds a record from a JUnit-style testcase: classname and
// name are joined with a dot, and a skipped or failed case does not pass.
func NewTestRecord(classname, name string, failed, skipped bool) TestRecord {
	key := classname
	switch {
	case key == "":
		key = name
	case name != "":
		key += "." + name
	}
	return TestRecord{
		GroupKey: key,
		Passed:   !failed && !skipped,
		Skipped:  skipped,
	}
}

// GroupRule names a bucket of tests and its score ceiling.
type GroupRule struct {
	Name     string
	Pattern  string
	MaxScore float64
	Weight   float64 // informational; scoring uses MaxScore only

	re *regexp.Regexp
}

// NewGroupRule compiles pattern as a case-insensitive regular expression.
func NewGroupRule(name, pattern string, maxScore float64) (GroupRule, error) {
	if name == "" {
		return GroupRule{}, configErr("groups", "group name is empty", nil)
	}
	if !finite(maxScore) || maxScore < 0 {
		return GroupRule{}, configErr("groups."+name+".max_score",
			fmt.Sprintf("must be a finite non-negative number, got %v", maxScore), nil)
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return GroupRule{}, configErr("groups."+name+".pattern", "invalid regular expression", err)
	}
	return GroupRule{Name: name, Pattern: pattern, MaxScore: maxScore, re: re}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// MustGroupRule is like NewGroupRule but panics on error.
// Intended for static defaults and tests.
func MustGroupRule(name, pattern string, maxScore float64) GroupRule {
	g, err := NewGroupRule(name, pattern, maxScore)
	if err != nil {
		panic(err)
	}
	return g
}

// WithWeight returns a copy of g carrying weight.
func (g GroupRule) WithWeight(weight float64) GroupRule {
	g.Weight = weight
	return g
}

// Matches reports whether key contains a match for the rule's pattern.
// An uncompiled rule matches nothing.
func (g GroupRule) Matches(key string) bool {
	return g.re != nil && g.re.MatchString(key)
}

// TotalMode selects where a rubric's overall maximum comes from.
type TotalMode int

const (
	// SumOfGroups derives the maximum from the configured group maxima.
	SumOfGroups TotalMode = iota
	// Fixed uses a constant supplied by the rubric.
	Fixed
)

func (m TotalMode) String() string {
	if m == Fixed {
		return "fixed"
	}
	return "sum"
}

// TotalPolicy decides the overall maximum score.
type TotalPolicy struct {
	Mode  TotalMode
	Fixed float64
}

// FixedTotal returns a policy with a constant maximum.
func FixedTotal(maxScore float64) TotalPolicy {
	return TotalPolicy{Mode: Fixed, Fixed: maxScore}
}

// MaxScore returns the overall maximum for the given groups.
func (p TotalPolicy) MaxScore(groups []GroupResult) float64 {
	if p.Mode == Fixed {
		return p.Fixed
	}
	var sum float64
	for _, g := range groups {
		sum += g.MaxScore
	}
	return sum
}

// GroupResult is the derived outcome of one group in a scoring run.
type GroupResult struct {
	Name        string
	Passed      int
	Skipped     int
	Total       int
	MaxScore    float64
	Score       float64 // rounded to two decimals
	FailedItems []string
}

// PassRate returns Passed/Total, or 0 when the group ran no tests.
func (g GroupResult) PassRate() float64 {
	if g.Total == 0 {
		return 0
	}
	return float64(g.Passed) / float64(g.Total)
}

// exactScore is the unrounded contribution of g to a total.
func (g GroupResult) exactScore() float64 {
	if g.Total == 0 {
		return 0
	}
	return g.PassRate() * g.MaxScore
}

// Result is the composed score of one submission.
type Result struct {
	TotalScore float64
	MaxScore   float64
	Groups     []GroupResult // rubric order
	NoEvidence bool          // no test records were scored
	Error      string        // set alongside NoEvidence
}

// Group returns the named group result.
func (r Result) Group(name string) (GroupResult, bool) {
	for _, g := range r.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return GroupResult{}, false
}

// FailedItems returns every group's failed items in group order.
func (r Result) FailedItems() []string {
	var out []string
	for _, g := range r.Groups {
		out = append(out, g.FailedItems...)
	}
	return out
}

// TestCount returns the number of records scored across all groups.
func (r Result) TestCount() (passed, total int) {
	for _, g := range r.Groups {
		passed += g.Passed
		total += g.Total
	}
	return passed, total
}
