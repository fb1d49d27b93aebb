package rubric

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type groupJSON struct {
	Passed      int      `json:"passed"`
	Total       int      `json:"total"`
	Skipped     int      `json:"skipped,omitempty"`
	MaxScore    float64  `json:"max_score"`
	Score       float64  `json:"score"`
	FailedTests []string `json:"failed_tests"`
}

// MarshalJSON emits the grade document consumed by report renderers.
// Groups are an object keyed by name, in rubric order.
func (r Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"total_score":`)
	if err := writeJSON(&buf, r.TotalScore); err != nil {
		return nil, err
	}
	buf.WriteString(`,"max_score":`)
	if err := writeJSON(&buf, r.MaxScore); err != nil {
		return nil, err
	}
	buf.WriteString(`,"groups":{`)
	for i, g := range r.Groups {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(&buf, g.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		failed := g.FailedItems
		if failed == nil {
			failed = []string{}
		}
		if err := writeJSON(&buf, groupJSON{
			Passed:      g.Passed,
			Total:       g.Total,
			Skipped:     g.Skipped,
			MaxScore:    g.MaxScore,
			Score:       g.Score,
			FailedTests: failed,
		}); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	if r.Error != "" {
		buf.WriteString(`,"error":`)
		if err := writeJSON(&buf, r.Error); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a grade document written by MarshalJSON, keeping
// group order.
func (r *Result) UnmarshalJSON(data []byte) error {
	var doc struct {
		TotalScore float64         `json:"total_score"`
		MaxScore   float64         `json:"max_score"`
		Groups     json.RawMessage `json:"groups"`
		Error      string          `json:"error"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode grade: %w", err)
	}
	var groups []GroupResult
	err := eachMember(doc.Groups, func(name string, raw json.RawMessage) error {
		var g groupJSON
		if err := json.Unmarshal(raw, &g); err != nil {
			return fmt.Errorf("decode group %q: %w", name, err)
		}
		groups = append(groups, GroupResult{
			Name:        name,
			Passed:      g.Passed,
			Skipped:     g.Skipped,
			Total:       g.Total,
			MaxScore:    g.MaxScore,
			Score:       g.Score,
			FailedItems: g.FailedTests,
		})
		return nil
	})
	if err != nil {
		return err
	}
	*r = Result{
		TotalScore: doc.TotalScore,
		MaxScore:   doc.MaxScore,
		Groups:     groups,
		Error:      doc.Error,
		NoEvidence: doc.Error != "",
	}
	return nil
}

func writeJSON(buf *bytes.Buffer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// eachMember calls fn for every member of a JSON object in document order.
// Empty or null input yields no calls.
func eachMember(raw json.RawMessage, fn func(key string, val json.RawMessage) error) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return err
		}
		if err := fn(key, val); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}
