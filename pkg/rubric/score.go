package rubric

import (
	"github.com/dkoosis/gradekit/internal/logging"
	"github.com/dkoosis/gradekit/internal/round"
)

// NoEvidenceMessage marks a result scored from zero test records.
const NoEvidenceMessage = "no test results found"

// Aggregate buckets records into the rubric's groups and scores each group
// by pass rate. It returns one result per rule, in rule order, including
// groups that ran no tests.
func Aggregate(records []TestRecord, r *Rubric) ([]GroupResult, error) {
	if !r.valid() {
		return nil, configErr("groups", "rubric is not initialised", nil)
	}
	results := make([]GroupResult, len(r.groups))
	for i, g := range r.groups {
		results[i] = GroupResult{Name: g.Name, MaxScore: g.MaxScore}
	}

	logger := logging.New("rubric")
	for _, rec := range records {
		name, err := Classify(rec, r.groups, r.fallback)
		if err != nil {
			return nil, err
		}
		logger.Debug("classified", "test", rec.GroupKey, "group", name, "passed", rec.Passed)

		g := &results[r.index[name]]
		g.Total++
		if rec.Skipped {
			g.Skipped++
		}
		if rec.Passed {
			g.Passed++
			continue
		}
		if len(g.FailedItems) < MaxFailedItems {
			g.FailedItems = append(g.FailedItems, rec.GroupKey)
		}
	}

	for i := range results {
		results[i].Score = round.Score(results[i].exactScore())
	}
	return results, nil
}

// Compose sums group scores into a result. The total is summed at full
// precision from each group's counts and then rounded; a group that ran no
// tests contributes nothing. Identical inputs give identical output.
func Compose(groups []GroupResult, total TotalPolicy) Result {
	var sum float64
	var tests int
	for _, g := range groups {
		sum += g.exactScore()
		tests += g.Total
	}
	res := Result{
		TotalScore: round.Score(sum),
		MaxScore:   total.MaxScore(groups),
		Groups:     append([]GroupResult(nil), groups...),
	}
	if tests == 0 {
		res.NoEvidence = true
		res.Error = NoEvidenceMessage
	}
	return res
}

// Score aggregates records and composes the result. An empty record set
// scores zero with NoEvidence set; it never reads as a pass.
func Score(records []TestRecord, r *Rubric) (Result, error) {
	groups, err := Aggregate(records, r)
	if err != nil {
		return Result{}, err
	}
	res := Compose(groups, r.total)
	if res.NoEvidence {
		logging.New("rubric").Warn("no test records to score", "max_score", res.MaxScore)
	}
	return res, nil
}
