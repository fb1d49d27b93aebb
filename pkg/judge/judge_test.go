package judge

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_RoundsAndRecomputesTotal(t *testing.T) {
	resp := Response{
		Total: 9.5, // disagrees with the criteria
		Criteria: []Criterion{
			{ID: "reflection", Score: 2.5},
			{ID: "evidence", Score: 3.5},
			{ID: "clarity", Score: 1.2},
		},
		Confidence: 0.9,
	}
	got := Normalize(resp, Rubric{MaxScore: 10})

	assert.Equal(t, []float64{2, 4, 1}, []float64{got.Criteria[0].Score, got.Criteria[1].Score, got.Criteria[2].Score})
	assert.InDelta(t, 7.0, got.Total, 1e-9)
	assert.Empty(t, got.Flags)
	assert.InDelta(t, 2.5, resp.Criteria[0].Score, 1e-9, "input untouched")
}

func TestNormalize_NoCriteriaKeepsTotal(t *testing.T) {
	got := Normalize(Response{Total: 3, Confidence: 1}, Rubric{})
	assert.InDelta(t, 3.0, got.Total, 1e-9)
}

func TestNormalize_ReviewFlags(t *testing.T) {
	tests := []struct {
		name       string
		total      float64
		confidence float64
		band       []float64
		flags      []string
		want       []string
	}{
		{"clean", 8, 0.9, []float64{5, 6}, nil, []string{}},
		{"inside band", 5, 0.9, []float64{5, 6}, nil, []string{FlagNeedReview}},
		{"band upper edge", 6, 0.9, []float64{5, 6}, nil, []string{FlagNeedReview}},
		{"low confidence", 8, 0.5, nil, nil, []string{FlagNeedReview}},
		{"threshold is not low", 8, 0.7, nil, nil, []string{}},
		{"dedup and sort", 5, 0.2, []float64{5, 6}, []string{"off_topic", FlagNeedReview}, []string{FlagNeedReview, "off_topic"}},
		{"malformed band ignored", 5, 0.9, []float64{5}, nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(Response{Total: tt.total, Confidence: tt.confidence, Flags: tt.flags}, Rubric{BorderlineBand: tt.band})
			assert.Equal(t, tt.want, got.Flags)
		})
	}
}

func TestParseResponse(t *testing.T) {
	resp, err := ParseResponse([]byte(`{"total": 4, "criteria": [{"id": "a", "score": 4, "reason": "ok"}], "flags": []}`))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, resp.Confidence, 1e-9, "absent confidence defaults to 1")
	assert.Equal(t, "ok", resp.Criteria[0].Reason)

	resp, err = ParseResponse([]byte(`{"total": 0, "confidence": 0}`))
	require.NoError(t, err)
	assert.Zero(t, resp.Confidence)

	_, err = ParseResponse([]byte(`not json`))
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestParseRubric(t *testing.T) {
	r, err := ParseRubric([]byte(`{"borderline_band": [4, 6]}`))
	require.NoError(t, err)
	assert.InDelta(t, 10.0, r.MaxScore, 1e-9)
	assert.Equal(t, []float64{4, 6}, r.BorderlineBand)

	_, err = ParseRubric([]byte(`[`))
	assert.Error(t, err)
}

func TestEvaluate(t *testing.T) {
	rubric := Rubric{MaxScore: 5, BorderlineBand: []float64{2, 3}}
	sub := Submission{Question: "Reflect on the assignment.", Answer: "I learned to handle missing values."}

	t.Run("normalised verdict", func(t *testing.T) {
		var got Submission
		oracle := OracleFunc(func(_ context.Context, s Submission, r Rubric) (Response, error) {
			got = s
			assert.Equal(t, rubric, r)
			return Response{Criteria: []Criterion{{ID: "depth", Score: 3.6}, {ID: "clarity", Score: 1}}, Confidence: 0.95}, nil
		})
		resp := Evaluate(context.Background(), oracle, sub, rubric)
		assert.Equal(t, sub, got)
		assert.InDelta(t, 5.0, resp.Total, 1e-9)
		assert.Empty(t, resp.Flags)
	})

	t.Run("empty answer is not sent", func(t *testing.T) {
		called := false
		oracle := OracleFunc(func(context.Context, Submission, Rubric) (Response, error) {
			called = true
			return Response{Total: 5}, nil
		})
		resp := Evaluate(context.Background(), oracle, Submission{Question: "q", Answer: "  \n"}, rubric)
		assert.False(t, called)
		assert.Zero(t, resp.Total)
		assert.Zero(t, resp.Confidence)
		assert.Equal(t, []string{FlagEmptyAnswer, FlagNeedReview}, resp.Flags)
	})

	t.Run("oracle failure awards nothing", func(t *testing.T) {
		oracle := OracleFunc(func(context.Context, Submission, Rubric) (Response, error) {
			return Response{Total: 5}, errors.New("timeout")
		})
		resp := Evaluate(context.Background(), oracle, sub, rubric)
		assert.Zero(t, resp.Total)
		assert.True(t, resp.HasFlag(FlagLLMError))
		assert.True(t, resp.HasFlag(FlagNeedReview))
	})
}

func TestPrompt(t *testing.T) {
	p := Prompt(Submission{Question: " Why? ", Answer: "Because."}, `{"max_score": 5}`)
	assert.Contains(t, p, "<<<Why?>>>")
	assert.Contains(t, p, "<<<Because.>>>")
	assert.Contains(t, p, `<<<{"max_score": 5}>>>`)
	assert.NotContains(t, p, "{question}")
}
