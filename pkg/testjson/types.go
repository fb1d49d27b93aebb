// Package testjson turns go test -json NDJSON streams into rubric test
// records.
package testjson

import (
	"time"

	"github.com/dkoosis/gradekit/pkg/rubric"
)

// Terminal and informational actions emitted by go test -json.
const (
	ActionRun    = "run"
	ActionPass   = "pass"
	ActionFail   = "fail"
	ActionSkip   = "skip"
	ActionOutput = "output"
)

// TestEvent represents a single event from go test -json output.
type TestEvent struct {
	Time    time.Time `json:"Time"`
	Action  string    `json:"Action"` // start, run, pass, fail, skip, output, bench, pause, cont
	Package string    `json:"Package"`
	Test    string    `json:"Test"`
	Elapsed float64   `json:"Elapsed"`
	Output  string    `json:"Output"`
}

// ProcessFunc is called by Stream for every decoded event.
type ProcessFunc func(TestEvent)

// TestCase is the final state of one test, subtests included.
type TestCase struct {
	Package  string
	Name     string
	Action   string // last terminal action: pass, fail or skip; empty if none seen
	Duration time.Duration
	Output   []string
}

// Key returns the group key a rubric classifies: package.TestName.
func (c TestCase) Key() string {
	if c.Package == "" {
		return c.Name
	}
	return c.Package + "." + c.Name
}

// Record converts the test case into a rubric record. A test that never
// reached a terminal action counts as failed.
func (c TestCase) Record() rubric.TestRecord {
	return rubric.TestRecord{
		GroupKey: c.Key(),
		Passed:   c.Action == ActionPass,
		Skipped:  c.Action == ActionSkip,
	}
}

// Stats summarises a parsed stream.
type Stats struct {
	Tests       int
	Passed      int
	Failed      int
	Skipped     int
	Packages    int
	BuildErrors []string // packages that failed without running a test
}

// ComputeStats counts outcomes across cases. Build failures come from the
// collector, which alone sees package-level events.
func ComputeStats(cases []TestCase) Stats {
	var s Stats
	pkgs := map[string]struct{}{}
	for _, c := range cases {
		pkgs[c.Package] = struct{}{}
		s.Tests++
		switch c.Action {
		case ActionPass:
			s.Passed++
		case ActionSkip:
			s.Skipped++
		default:
			s.Failed++
		}
	}
	s.Packages = len(pkgs)
	return s
}
