package gradebook

// Level is a grade band.
type Level string

const (
	Excellent Level = "excellent" // 90-100
	Good      Level = "good"      // 80-89
	Pass      Level = "pass"      // 60-79
	Fail      Level = "fail"      // 0-59
)

// Levels lists the bands from highest to lowest.
var Levels = []Level{Excellent, Good, Pass, Fail}

// Bucket counts the scores falling in one band.
type Bucket struct {
	Level Level
	Count int
}

// LevelOf returns the band for a valid score.
func LevelOf(score float64) Level {
	switch {
	case score >= 90:
		return Excellent
	case score >= 80:
		return Good
	case score >= 60:
		return Pass
	default:
		return Fail
	}
}

// Distribution counts valid scores per band. Every band is present, in
// Levels order, even when empty.
func (b *Book) Distribution(subject string) []Bucket {
	counts := make(map[Level]int, len(Levels))
	for _, v := range b.Scores(subject) {
		counts[LevelOf(v)]++
	}
	out := make([]Bucket, len(Levels))
	for i, l := range Levels {
		out[i] = Bucket{Level: l, Count: counts[l]}
	}
	return out
}
