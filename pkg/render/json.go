package render

import (
	"encoding/json"

	"github.com/dkoosis/gradekit/pkg/pattern"
)

// JSON renders patterns as structured JSON for automation.
type JSON struct{}

// NewJSON creates a JSON renderer.
func NewJSON() *JSON {
	return &JSON{}
}

type jsonOutput struct {
	Version  string        `json:"version"`
	Title    string        `json:"title,omitempty"`
	Patterns []jsonPattern `json:"patterns"`
}

type jsonPattern struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Render formats the document as indented JSON.
func (j *JSON) Render(doc pattern.Document) string {
	out := jsonOutput{
		Version:  "1",
		Title:    doc.Title,
		Patterns: make([]jsonPattern, 0, len(doc.Patterns)),
	}
	for _, p := range doc.Patterns {
		out.Patterns = append(out.Patterns, jsonPattern{Type: string(p.Type()), Data: p})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		errJSON, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(errJSON)
	}
	return string(data) + "\n"
}
