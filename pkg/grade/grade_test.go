package grade

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/gradekit/pkg/judge"
	"github.com/dkoosis/gradekit/pkg/rubric"
)

func conf(v float64) *float64 { return &v }

func TestAggregate_SumsDimensions(t *testing.T) {
	prog := Dimension{Name: "program", Score: 52.333, MaxScore: 60}
	report := Dimension{Name: "report", Score: 7, MaxScore: 10, Confidence: conf(0.9)}

	f := Aggregate(prog, report)

	assert.InDelta(t, 59.33, f.TotalScore, 1e-9)
	assert.InDelta(t, 70.0, f.MaxScore, 1e-9)
	require.NotNil(t, f.Confidence)
	assert.InDelta(t, 0.9, *f.Confidence, 1e-9)
	assert.Empty(t, f.Flags)
	assert.False(t, f.NeedsReview())

	require.Len(t, f.Breakdown, 2)
	assert.Equal(t, "program", f.Breakdown[0].Name)
	assert.Equal(t, "report", f.Breakdown[1].Name)
	assert.InDelta(t, 52.33, f.Breakdown[0].Score, 1e-9)
}

func TestAggregate_FlagsAndConfidence(t *testing.T) {
	a := Dimension{Name: "a", Score: 1, MaxScore: 5, Flags: []string{"off_topic"}, Confidence: conf(0.95)}
	b := Dimension{Name: "b", Score: 2, MaxScore: 5, Flags: []string{"off_topic", "llm_error"}, Confidence: conf(0.6)}
	c := Dimension{Name: "c", Score: 3, MaxScore: 5}

	f := Aggregate(a, b, c)

	require.NotNil(t, f.Confidence)
	assert.InDelta(t, 0.6, *f.Confidence, 1e-9)
	assert.Equal(t, []string{"llm_error", "need_review", "off_topic"}, f.Flags)
	assert.True(t, f.NeedsReview())
}

func TestAggregate_NoConfidence(t *testing.T) {
	f := Aggregate(Dimension{Name: "program", Score: 4, MaxScore: 10})
	assert.Nil(t, f.Confidence)
	assert.Empty(t, f.Flags)
}

func TestAggregate_Empty(t *testing.T) {
	f := Aggregate()
	assert.Zero(t, f.TotalScore)
	assert.Zero(t, f.MaxScore)
	assert.Empty(t, f.Breakdown)
}

func TestFromJudgeAndRubric(t *testing.T) {
	resp := judge.Response{
		Total:      6,
		Criteria:   []judge.Criterion{{ID: "depth", Score: 6}},
		Flags:      []string{judge.FlagNeedReview},
		Confidence: 0.5,
	}
	d := FromJudge("report", resp, 10)
	assert.Equal(t, "report", d.Name)
	assert.InDelta(t, 6.0, d.Score, 1e-9)
	assert.InDelta(t, 10.0, d.MaxScore, 1e-9)
	require.NotNil(t, d.Confidence)
	assert.InDelta(t, 0.5, *d.Confidence, 1e-9)

	res, err := rubric.Score([]rubric.TestRecord{{GroupKey: "core.A", Passed: true}}, rubric.SimpleRubric())
	require.NoError(t, err)
	p := FromRubric("program", res)
	assert.InDelta(t, 10.0, p.Score, 1e-9)
	assert.InDelta(t, 15.0, p.MaxScore, 1e-9)
	assert.Len(t, p.Groups, 2)
	assert.Nil(t, p.Confidence)
}

func TestFinal_MarshalJSON(t *testing.T) {
	res, err := rubric.Score([]rubric.TestRecord{
		{GroupKey: "core.A", Passed: true},
		{GroupKey: "edge.B", Passed: false},
	}, rubric.SimpleRubric())
	require.NoError(t, err)

	f := Aggregate(
		FromRubric("program", res),
		FromJudge("report", judge.Response{Total: 8, Confidence: 0.8}, 10),
	)
	data, err := json.Marshal(f)
	require.NoError(t, err)

	var doc struct {
		TotalScore float64                    `json:"total_score"`
		MaxScore   float64                    `json:"max_score"`
		Breakdown  map[string]json.RawMessage `json:"breakdown"`
		Flags      []string                   `json:"flags"`
		Confidence *float64                   `json:"confidence"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.InDelta(t, 18.0, doc.TotalScore, 1e-9)
	assert.InDelta(t, 25.0, doc.MaxScore, 1e-9)
	assert.Contains(t, doc.Breakdown, "program")
	assert.Contains(t, doc.Breakdown, "report")
	assert.Empty(t, doc.Flags)
	require.NotNil(t, doc.Confidence)
	assert.InDelta(t, 0.8, *doc.Confidence, 1e-9)

	var program struct {
		Score  float64                    `json:"score"`
		Groups map[string]json.RawMessage `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(doc.Breakdown["program"], &program))
	assert.InDelta(t, 10.0, program.Score, 1e-9)
	assert.Contains(t, program.Groups, "core")
	assert.Contains(t, program.Groups, "edge")

	s := string(data)
	assert.Less(t, strings.Index(s, `"program"`), strings.Index(s, `"report"`), "breakdown keeps order")
}
