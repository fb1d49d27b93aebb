package grade

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dkoosis/gradekit/internal/logging"
	"github.com/dkoosis/gradekit/pkg/rank"
	"github.com/dkoosis/gradekit/pkg/rubric"
)

// ErrNoRubric is returned by ScoreAll when no rubric is supplied.
var ErrNoRubric = errors.New("grade: nil rubric")

// Submission is one student's test records.
type Submission struct {
	ID      string
	Name    string
	Records []rubric.TestRecord
}

// Outcome is the scoring result of one submission.
type Outcome struct {
	ID     string
	Name   string
	Result rubric.Result
	Err    error
}

// Scored reports whether the outcome carries a usable score.
func (o Outcome) Scored() bool {
	return o.Err == nil && !o.Result.NoEvidence
}

// ScoreAll scores every submission against r, at most parallel at a time
// (parallel < 1 means one). Outcomes keep submission order. A failing
// submission records its error in Outcome.Err and does not stop the batch;
// cancelling ctx does, and its error is returned.
func ScoreAll(ctx context.Context, r *rubric.Rubric, subs []Submission, parallel int) ([]Outcome, error) {
	if r == nil {
		return nil, ErrNoRubric
	}
	if parallel < 1 {
		parallel = 1
	}
	logger := logging.New("grade")
	logger.Info("scoring batch", "submissions", len(subs), "workers", parallel)

	outcomes := make([]Outcome, len(subs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, sub := range subs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := rubric.Score(sub.Records, r)
			if err != nil {
				err = fmt.Errorf("score %s: %w", sub.ID, err)
				logger.Error("submission failed", "id", sub.ID, "error", err)
			}
			outcomes[i] = Outcome{ID: sub.ID, Name: sub.Name, Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	if err := ctx.Err(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}

// Standings ranks the scored outcomes by total score. Errored and
// no-evidence submissions have no score and are left out.
func Standings(outcomes []Outcome) []rank.Entry {
	records := make([]rank.ScoreRecord, 0, len(outcomes))
	for _, o := range outcomes {
		rec := rank.ScoreRecord{ID: o.ID, Name: o.Name}
		if o.Scored() {
			rec.Score = rank.Value(o.Result.TotalScore)
		}
		records = append(records, rec)
	}
	return rank.Rank(records)
}
