// Package grade combines scored dimensions into a final grade and scores
// batches of submissions.
package grade

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/dkoosis/gradekit/internal/round"
	"github.com/dkoosis/gradekit/pkg/judge"
	"github.com/dkoosis/gradekit/pkg/rubric"
)

// Dimension is one independently scored part of a grade, such as the
// programming tests or the written report.
type Dimension struct {
	Name       string               `json:"-"`
	Score      float64              `json:"score"`
	MaxScore   float64              `json:"max_score"`
	Groups     []rubric.GroupResult `json:"-"`
	Criteria   []judge.Criterion    `json:"criteria,omitempty"`
	Flags      []string             `json:"flags,omitempty"`
	Confidence *float64             `json:"confidence,omitempty"`
	NoEvidence bool                 `json:"no_evidence,omitempty"`
}

// FromRubric turns a test-scoring result into a dimension.
func FromRubric(name string, res rubric.Result) Dimension {
	return Dimension{
		Name:       name,
		Score:      res.TotalScore,
		MaxScore:   res.MaxScore,
		Groups:     res.Groups,
		NoEvidence: res.NoEvidence,
	}
}

// FromJudge turns a rubric verdict into a dimension worth maxScore.
func FromJudge(name string, resp judge.Response, maxScore float64) Dimension {
	conf := resp.Confidence
	return Dimension{
		Name:       name,
		Score:      resp.Total,
		MaxScore:   maxScore,
		Criteria:   resp.Criteria,
		Flags:      resp.Flags,
		Confidence: &conf,
	}
}

// Final is the aggregated grade.
type Final struct {
	TotalScore float64
	MaxScore   float64
	Breakdown  []Dimension
	Flags      []string
	Confidence *float64 // lowest defined dimension confidence
}

// Dimension returns the named dimension.
func (f Final) Dimension(name string) (Dimension, bool) {
	for _, d := range f.Breakdown {
		if d.Name == name {
			return d, true
		}
	}
	return Dimension{}, false
}

// NeedsReview reports whether the grade carries the review flag.
func (f Final) NeedsReview() bool {
	for _, fl := range f.Flags {
		if fl == judge.FlagNeedReview {
			return true
		}
	}
	return false
}

// Aggregate sums dimensions into a final grade. Flags are unioned; the
// confidence is the lowest one any dimension defines, and one below
// judge.ReviewThreshold adds the review flag. Breakdown keeps argument order.
func Aggregate(dims ...Dimension) Final {
	var total, maxScore float64
	var conf *float64
	seen := map[string]struct{}{}
	breakdown := make([]Dimension, len(dims))

	for i, d := range dims {
		total += d.Score
		maxScore += d.MaxScore
		for _, f := range d.Flags {
			seen[f] = struct{}{}
		}
		if d.Confidence != nil && (conf == nil || *d.Confidence < *conf) {
			c := *d.Confidence
			conf = &c
		}
		d.Score = round.Score(d.Score)
		breakdown[i] = d
	}
	if conf != nil && *conf < judge.ReviewThreshold {
		seen[judge.FlagNeedReview] = struct{}{}
	}

	flags := make([]string, 0, len(seen))
	for f := range seen {
		flags = append(flags, f)
	}
	sort.Strings(flags)

	return Final{
		TotalScore: round.Score(total),
		MaxScore:   maxScore,
		Breakdown:  breakdown,
		Flags:      flags,
		Confidence: conf,
	}
}

// MarshalJSON writes the final grade document with the breakdown as an
// object keyed by dimension name, in aggregation order.
func (f Final) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"total_score":`)
	if err := encode(&buf, f.TotalScore); err != nil {
		return nil, err
	}
	buf.WriteString(`,"max_score":`)
	if err := encode(&buf, f.MaxScore); err != nil {
		return nil, err
	}
	buf.WriteString(`,"breakdown":{`)
	for i, d := range f.Breakdown {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encode(&buf, d.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encode(&buf, dimensionJSON(d)); err != nil {
			return nil, err
		}
	}
	buf.WriteString(`},"flags":`)
	if err := encode(&buf, f.Flags); err != nil {
		return nil, err
	}
	if f.Confidence != nil {
		buf.WriteString(`,"confidence":`)
		if err := encode(&buf, *f.Confidence); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// dimensionJSON nests the group breakdown of a test-scored dimension.
func dimensionJSON(d Dimension) any {
	if len(d.Groups) == 0 {
		return d
	}
	type plain Dimension
	return struct {
		plain
		Groups json.RawMessage `json:"groups"`
	}{plain: plain(d), Groups: groupsJSON(d)}
}

func groupsJSON(d Dimension) json.RawMessage {
	data, err := json.Marshal(rubric.Result{Groups: d.Groups})
	if err != nil {
		return json.RawMessage(`{}`)
	}
	var doc struct {
		Groups json.RawMessage `json:"groups"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return json.RawMessage(`{}`)
	}
	return doc.Groups
}

func encode(buf *bytes.Buffer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
