package rank

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func records(scores ...float64) []ScoreRecord {
	out := make([]ScoreRecord, len(scores))
	for i, s := range scores {
		out[i] = ScoreRecord{ID: string(rune('a' + i)), Score: Value(s)}
	}
	return out
}

func ranks(entries []Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Rank
	}
	return out
}

func TestRank(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   []int
	}{
		{"tie at top skips", []float64{95, 95, 90, 80}, []int{1, 1, 3, 4}},
		{"all equal", []float64{70, 70, 70}, []int{1, 1, 1}},
		{"single", []float64{42}, []int{1}},
		{"unsorted input", []float64{80, 95, 90, 95}, []int{1, 1, 3, 4}},
		{"tie in middle", []float64{100, 90, 90, 90, 60}, []int{1, 2, 2, 2, 5}},
		{"fractional", []float64{88.5, 88.25, 88.5}, []int{1, 1, 3}},
		{"empty", nil, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ranks(Rank(records(tt.scores...)))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ranks mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRank_OrderAndStability(t *testing.T) {
	in := []ScoreRecord{
		{ID: "2024001", Name: "Zhang", Score: Value(90)},
		{ID: "2024003", Name: "Wang", Score: Value(95)},
		{ID: "2024002", Name: "Li", Score: Value(90)},
		{ID: "2024005", Name: "Qian", Score: Value(95)},
	}
	want := []Entry{
		{Rank: 1, ID: "2024003", Name: "Wang", Score: 95},
		{Rank: 1, ID: "2024005", Name: "Qian", Score: 95},
		{Rank: 3, ID: "2024001", Name: "Zhang", Score: 90},
		{Rank: 3, ID: "2024002", Name: "Li", Score: 90},
	}
	if diff := cmp.Diff(want, Rank(in)); diff != "" {
		t.Errorf("Rank mismatch (-want +got):\n%s", diff)
	}
}

func TestRank_SkipsMissingScores(t *testing.T) {
	in := []ScoreRecord{
		{ID: "a", Score: Value(80)},
		{ID: "b"},
		{ID: "c", Score: Value(math.NaN())},
		{ID: "d", Score: Value(0)},
	}
	got := Rank(in)
	assert.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "d", got[1].ID)
	assert.Equal(t, 2, got[1].Rank, "a real zero is ranked")
}

func TestRank_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 200; iter++ {
		n := rng.Intn(20)
		scores := make([]float64, n)
		distinct := map[float64]struct{}{}
		for i := range scores {
			scores[i] = float64(rng.Intn(6) * 10)
			distinct[scores[i]] = struct{}{}
		}
		got := Rank(records(scores...))

		assert.Len(t, got, n)
		assert.Equal(t, len(distinct), Distinct(got))

		byScore := map[float64]int{}
		for i, e := range got {
			if r, ok := byScore[e.Score]; ok {
				assert.Equal(t, r, e.Rank, "equal scores share a rank")
			}
			byScore[e.Score] = e.Rank
			if i > 0 {
				assert.GreaterOrEqual(t, got[i-1].Score, e.Score)
			}
			// A rank is one more than the number of strictly better records.
			better := 0
			for _, o := range got {
				if o.Score > e.Score {
					better++
				}
			}
			assert.Equal(t, better+1, e.Rank)
		}
	}
}

func TestTop(t *testing.T) {
	got := Top(Rank(records(95, 95, 90, 80)), 2)
	assert.Len(t, got, 2)

	got = Top(Rank(records(95, 90, 90, 80)), 2)
	assert.Len(t, got, 3, "ties at the cut are kept")

	assert.Empty(t, Top(nil, 3))
}
