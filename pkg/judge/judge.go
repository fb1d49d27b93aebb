// Package judge normalises rubric verdicts returned by an LLM grader.
//
// The grader itself is opaque: anything implementing Oracle. This package
// only shapes what goes in and checks what comes out, so a failed or empty
// evaluation always scores zero and is flagged for human review.
package judge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dkoosis/gradekit/internal/logging"
)

// Review flags attached to a response.
const (
	FlagNeedReview  = "need_review"
	FlagEmptyAnswer = "empty_answer"
	FlagLLMError    = "llm_error"
)

// ReviewThreshold is the confidence below which a verdict needs review.
const ReviewThreshold = 0.7

// ErrMalformedResponse is returned when the oracle's output is not a verdict.
var ErrMalformedResponse = errors.New("judge: malformed response")

// Criterion is the score awarded for one rubric item.
type Criterion struct {
	ID     string  `json:"id"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason,omitempty"`
}

// Response is a rubric verdict.
type Response struct {
	Total      float64     `json:"total"`
	Criteria   []Criterion `json:"criteria"`
	Flags      []string    `json:"flags"`
	Confidence float64     `json:"confidence"`
}

// HasFlag reports whether flag is set on r.
func (r Response) HasFlag(flag string) bool {
	for _, f := range r.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// Rubric carries the parts of a scoring rubric that shape the verdict.
// BorderlineBand is an inclusive [lo, hi] total range that always goes to
// review; it is ignored unless it has exactly two values.
type Rubric struct {
	MaxScore       float64   `json:"max_score" yaml:"max_score"`
	BorderlineBand []float64 `json:"borderline_band,omitempty" yaml:"borderline_band,omitempty"`
}

// ParseRubric decodes a rubric document. A missing max_score defaults to 10.
func ParseRubric(data []byte) (Rubric, error) {
	r := Rubric{MaxScore: 10}
	if err := json.Unmarshal(data, &r); err != nil {
		return Rubric{}, fmt.Errorf("decode rubric: %w", err)
	}
	return r, nil
}

// ParseResponse decodes an oracle verdict. A missing confidence is 1.
func ParseResponse(data []byte) (Response, error) {
	var raw struct {
		Total      float64     `json:"total"`
		Criteria   []Criterion `json:"criteria"`
		Flags      []string    `json:"flags"`
		Confidence *float64    `json:"confidence"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	resp := Response{
		Total:      raw.Total,
		Criteria:   raw.Criteria,
		Flags:      raw.Flags,
		Confidence: 1,
	}
	if raw.Confidence != nil {
		resp.Confidence = *raw.Confidence
	}
	return resp, nil
}

// Normalize snaps criterion scores to integers (half to even), recomputes
// the total from them, and adds FlagNeedReview for borderline totals or low
// confidence. Flags come back deduplicated and sorted. resp is not modified.
func Normalize(resp Response, rubric Rubric) Response {
	out := resp
	if len(resp.Criteria) > 0 {
		out.Criteria = make([]Criterion, len(resp.Criteria))
		var total float64
		for i, c := range resp.Criteria {
			c.Score = math.RoundToEven(c.Score)
			out.Criteria[i] = c
			total += c.Score
		}
		out.Total = total
	}

	flags := append([]string(nil), resp.Flags...)
	if band := rubric.BorderlineBand; len(band) == 2 && band[0] <= out.Total && out.Total <= band[1] {
		flags = append(flags, FlagNeedReview)
	}
	if out.Confidence < ReviewThreshold {
		flags = append(flags, FlagNeedReview)
	}
	out.Flags = sortedFlags(flags)
	return out
}

// Submission is the text put in front of the oracle.
type Submission struct {
	Question string
	Answer   string
}

// Oracle grades a submission against a rubric. Implementations own
// transport, retries and timeouts.
type Oracle interface {
	Grade(ctx context.Context, sub Submission, rubric Rubric) (Response, error)
}

// OracleFunc adapts a function to Oracle.
type OracleFunc func(ctx context.Context, sub Submission, rubric Rubric) (Response, error)

// Grade calls f.
func (f OracleFunc) Grade(ctx context.Context, sub Submission, rubric Rubric) (Response, error) {
	return f(ctx, sub, rubric)
}

// Evaluate grades sub with oracle and normalises the verdict. An empty
// question or answer is never sent; it scores zero with FlagEmptyAnswer.
// An oracle failure scores zero with FlagLLMError.
func Evaluate(ctx context.Context, oracle Oracle, sub Submission, rubric Rubric) Response {
	if strings.TrimSpace(sub.Question) == "" || strings.TrimSpace(sub.Answer) == "" {
		return failed(FlagEmptyAnswer)
	}
	resp, err := oracle.Grade(ctx, sub, rubric)
	if err != nil {
		logging.New("judge").Warn("oracle grading failed", "error", err)
		return failed(FlagLLMError)
	}
	return Normalize(resp, rubric)
}

func failed(reason string) Response {
	return Response{
		Criteria:   []Criterion{},
		Flags:      sortedFlags([]string{FlagNeedReview, reason}),
		Confidence: 0,
	}
}

func sortedFlags(flags []string) []string {
	seen := make(map[string]struct{}, len(flags))
	out := make([]string, 0, len(flags))
	for _, f := range flags {
		if _, ok := seen[f]; ok || f == "" {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
