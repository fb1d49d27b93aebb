// Package gradebook computes per-subject statistics over student scores.
//
// A missing score is never treated as zero: it is left out of averages,
// distributions and rankings alike. Out-of-range scores are reported as
// issues and excluded the same way.
package gradebook

import (
	"fmt"
	"math"

	"github.com/dkoosis/gradekit/internal/round"
	"github.com/dkoosis/gradekit/pkg/rank"
)

// Valid score bounds, inclusive.
const (
	MinScore = 0.0
	MaxScore = 100.0
)

// Student is one row of the grade book. A subject absent from Scores, or
// mapped to nil, has no score.
type Student struct {
	ID     string
	Name   string
	Scores map[string]*float64
}

// IssueKind classifies a data problem found while building a book.
type IssueKind string

const (
	IssueDuplicateID  IssueKind = "duplicate_id"
	IssueInvalidScore IssueKind = "invalid_score"
)

// Issue is a problem with one student's data.
type Issue struct {
	Kind      IssueKind
	StudentID string
	Subject   string
	Value     float64
}

func (i Issue) String() string {
	switch i.Kind {
	case IssueDuplicateID:
		return fmt.Sprintf("duplicate student id %s", i.StudentID)
	case IssueInvalidScore:
		return fmt.Sprintf("student %s: %s score %v outside [%v, %v]", i.StudentID, i.Subject, i.Value, MinScore, MaxScore)
	default:
		return string(i.Kind)
	}
}

// Book holds students in insertion order.
type Book struct {
	subjects []string
	students []Student
	seen     map[string]bool
	issues   []Issue
}

// New returns an empty book for the given subjects, in report order.
func New(subjects ...string) *Book {
	return &Book{
		subjects: append([]string(nil), subjects...),
		seen:     make(map[string]bool),
	}
}

// Add appends s. A repeated ID keeps the first row and records an issue.
// Scores outside [MinScore, MaxScore] are recorded as issues.
func (b *Book) Add(s Student) {
	if b.seen[s.ID] {
		b.issues = append(b.issues, Issue{Kind: IssueDuplicateID, StudentID: s.ID})
		return
	}
	b.seen[s.ID] = true
	for _, subject := range b.subjects {
		if v, ok := present(s, subject); ok && !inRange(v) {
			b.issues = append(b.issues, Issue{Kind: IssueInvalidScore, StudentID: s.ID, Subject: subject, Value: v})
		}
	}
	b.students = append(b.students, s)
}

// Subjects returns the book's subjects in report order.
func (b *Book) Subjects() []string { return append([]string(nil), b.subjects...) }

// Students returns the accepted students in insertion order.
func (b *Book) Students() []Student { return append([]Student(nil), b.students...) }

// Len returns the number of accepted students.
func (b *Book) Len() int { return len(b.students) }

// Issues returns every problem found so far, in discovery order.
func (b *Book) Issues() []Issue { return append([]Issue(nil), b.issues...) }

// Scores returns the valid scores for subject in insertion order.
func (b *Book) Scores(subject string) []float64 {
	var out []float64
	for _, s := range b.students {
		if v, ok := present(s, subject); ok && inRange(v) {
			out = append(out, v)
		}
	}
	return out
}

// Average returns the mean of the valid scores for subject, rounded to two
// decimals. It reports false when no student has a score.
func (b *Book) Average(subject string) (float64, bool) {
	scores := b.Scores(subject)
	if len(scores) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range scores {
		sum += v
	}
	return round.Score(sum / float64(len(scores))), true
}

// Ranking ranks students with a valid score for subject.
func (b *Book) Ranking(subject string) []rank.Entry {
	records := make([]rank.ScoreRecord, 0, len(b.students))
	for _, s := range b.students {
		rec := rank.ScoreRecord{ID: s.ID, Name: s.Name}
		if v, ok := present(s, subject); ok && inRange(v) {
			rec.Score = rank.Value(v)
		}
		records = append(records, rec)
	}
	return rank.Rank(records)
}

func present(s Student, subject string) (float64, bool) {
	p, ok := s.Scores[subject]
	if !ok || p == nil || math.IsNaN(*p) {
		return 0, false
	}
	return *p, true
}

func inRange(v float64) bool {
	return v >= MinScore && v <= MaxScore
}
