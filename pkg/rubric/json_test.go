package rubric

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_MarshalJSON(t *testing.T) {
	res := Result{
		TotalScore: 7.5,
		MaxScore:   15,
		Groups: []GroupResult{
			{Name: "edge", Passed: 1, Total: 2, MaxScore: 5, Score: 2.5, FailedItems: []string{"tests.test_edge.test_gbk"}},
			{Name: "core", Passed: 1, Total: 2, MaxScore: 10, Score: 5},
		},
	}
	data, err := json.Marshal(res)
	require.NoError(t, err)

	want := `{"total_score":7.5,"max_score":15,"groups":{` +
		`"edge":{"passed":1,"total":2,"max_score":5,"score":2.5,"failed_tests":["tests.test_edge.test_gbk"]},` +
		`"core":{"passed":1,"total":2,"max_score":10,"score":5,"failed_tests":[]}}}`
	assert.JSONEq(t, want, string(data))
	assert.Less(t, indexOf(string(data), `"edge"`), indexOf(string(data), `"core"`), "groups keep rubric order")
}

func TestResult_MarshalJSON_NoEvidence(t *testing.T) {
	res, err := Score(nil, SimpleRubric())
	require.NoError(t, err)

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, NoEvidenceMessage, doc["error"])
	assert.EqualValues(t, 0, doc["total_score"])
}

func TestResult_UnmarshalJSONRoundTrip(t *testing.T) {
	orig, err := Score([]TestRecord{
		{GroupKey: "edge.A", Passed: true},
		{GroupKey: "core.B"},
		{GroupKey: "core.C", Skipped: true},
	}, SimpleRubric())
	require.NoError(t, err)

	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var back Result
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, orig.TotalScore, back.TotalScore)
	require.Len(t, back.Groups, 2)
	assert.Equal(t, "core", back.Groups[0].Name)
	assert.Equal(t, []string{"core.B", "core.C"}, back.Groups[0].FailedItems)
	assert.Equal(t, 1, back.Groups[0].Skipped)
}

func TestResult_UnmarshalJSON_Malformed(t *testing.T) {
	var r Result
	assert.Error(t, json.Unmarshal([]byte(`{"groups": [1, 2]}`), &r))
	assert.Error(t, json.Unmarshal([]byte(`{"groups": {"core": "x"}}`), &r))
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
