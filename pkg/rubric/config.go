package rubric

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Configuration document, JSON or YAML:
//
//	groups:
//	  core:     {pattern: "core", max_score: 60, weight: 0.75}
//	  advanced: {pattern: "advanced", max_score: 10}
//	fallback_group: core
//	max_score: 80        # optional; selects a fixed total
//
// Groups keep document order, which is the match order.

type groupDoc struct {
	Pattern  string   `json:"pattern" yaml:"pattern"`
	MaxScore *float64 `json:"max_score" yaml:"max_score"`
	Weight   float64  `json:"weight" yaml:"weight"`
}

type namedGroup struct {
	name string
	doc  groupDoc
}

// ReadFile loads a rubric configuration from disk.
func ReadFile(path string) (*Rubric, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rubric config: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses a rubric configuration from an io.Reader.
func Read(r io.Reader) (*Rubric, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read rubric config: %w", err)
	}
	return ReadBytes(data)
}

// ReadBytes parses a rubric configuration. Input starting with '{' is read
// as JSON, anything else as YAML.
func ReadBytes(data []byte) (*Rubric, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, configErr("document", "empty rubric config", nil)
	}

	var (
		groups   []namedGroup
		fallback string
		total    *float64
		err      error
	)
	if trimmed[0] == '{' {
		groups, fallback, total, err = decodeJSON(trimmed)
	} else {
		groups, fallback, total, err = decodeYAML(trimmed)
	}
	if err != nil {
		return nil, err
	}
	return build(groups, fallback, total)
}

func decodeJSON(data []byte) ([]namedGroup, string, *float64, error) {
	var doc struct {
		Groups        json.RawMessage `json:"groups"`
		FallbackGroup string          `json:"fallback_group"`
		MaxScore      *float64        `json:"max_score"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, "", nil, configErr("document", "malformed JSON", err)
	}
	var groups []namedGroup
	err := eachMember(doc.Groups, func(name string, raw json.RawMessage) error {
		var g groupDoc
		if err := json.Unmarshal(raw, &g); err != nil {
			return configErr("groups."+name, "malformed group", err)
		}
		groups = append(groups, namedGroup{name: name, doc: g})
		return nil
	})
	if err != nil {
		return nil, "", nil, asConfigErr("groups", err)
	}
	return groups, doc.FallbackGroup, doc.MaxScore, nil
}

func decodeYAML(data []byte) ([]namedGroup, string, *float64, error) {
	var doc struct {
		Groups        yaml.Node `yaml:"groups"`
		FallbackGroup string    `yaml:"fallback_group"`
		MaxScore      *float64  `yaml:"max_score"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, "", nil, configErr("document", "malformed YAML", err)
	}
	if doc.Groups.Kind == 0 {
		return nil, doc.FallbackGroup, doc.MaxScore, nil
	}
	if doc.Groups.Kind != yaml.MappingNode {
		return nil, "", nil, configErr("groups", "must be a mapping of name to group", nil)
	}
	var groups []namedGroup
	for i := 0; i+1 < len(doc.Groups.Content); i += 2 {
		name := doc.Groups.Content[i].Value
		var g groupDoc
		if err := doc.Groups.Content[i+1].Decode(&g); err != nil {
			return nil, "", nil, configErr("groups."+name, "malformed group", err)
		}
		groups = append(groups, namedGroup{name: name, doc: g})
	}
	return groups, doc.FallbackGroup, doc.MaxScore, nil
}

func build(groups []namedGroup, fallback string, total *float64) (*Rubric, error) {
	if len(groups) == 0 {
		return nil, configErr("groups", "at least one group is required", nil)
	}
	rules := make([]GroupRule, 0, len(groups))
	for _, g := range groups {
		if g.doc.MaxScore == nil {
			return nil, configErr("groups."+g.name+".max_score", "is required", nil)
		}
		rule, err := NewGroupRule(g.name, g.doc.Pattern, *g.doc.MaxScore)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule.WithWeight(g.doc.Weight))
	}
	if fallback == "" {
		fallback = rules[0].Name
	}
	policy := TotalPolicy{Mode: SumOfGroups}
	if total != nil {
		policy = FixedTotal(*total)
	}
	return New(rules, fallback, policy)
}

func asConfigErr(field string, err error) error {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return err
	}
	return configErr(field, "malformed JSON", err)
}

// DefaultRubric is the grouped-assignment layout: core 60, advanced 10,
// challenge 10 against a fixed total of 80, unmatched tests count as core.
func DefaultRubric() *Rubric {
	r, err := New([]GroupRule{
		MustGroupRule("core", ".*core.*", 60).WithWeight(0.75),
		MustGroupRule("advanced", ".*advanced.*", 10).WithWeight(0.125),
		MustGroupRule("challenge", ".*challenge.*", 10).WithWeight(0.125),
	}, "core", FixedTotal(80))
	if err != nil {
		panic(err)
	}
	return r
}

// SimpleRubric is the two-group layout: core 10 and edge 5, total derived
// from the groups.
func SimpleRubric() *Rubric {
	r, err := New([]GroupRule{
		MustGroupRule("core", "core", 10),
		MustGroupRule("edge", "edge", 5),
	}, "core", TotalPolicy{Mode: SumOfGroups})
	if err != nil {
		panic(err)
	}
	return r
}
