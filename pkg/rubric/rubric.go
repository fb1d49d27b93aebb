package rubric

import "fmt"

// Rubric is a validated, ordered set of group rules.
// The zero value is not usable; build one with New.
type Rubric struct {
	groups   []GroupRule
	index    map[string]int
	fallback string
	total    TotalPolicy
}

// New validates groups and returns a rubric. Group order is the match order.
func New(groups []GroupRule, fallback string, total TotalPolicy) (*Rubric, error) {
	if len(groups) == 0 {
		return nil, configErr("groups", "at least one group is required", nil)
	}
	index := make(map[string]int, len(groups))
	for i, g := range groups {
		if g.re == nil {
			return nil, configErr("groups."+g.Name+".pattern", "rule was not built with NewGroupRule", nil)
		}
		if _, dup := index[g.Name]; dup {
			return nil, configErr("groups."+g.Name, "duplicate group name", nil)
		}
		index[g.Name] = i
	}
	if _, ok := index[fallback]; !ok {
		return nil, configErr("fallback_group", fmt.Sprintf("%q is not a configured group", fallback), nil)
	}
	if total.Mode == Fixed && (!finite(total.Fixed) || total.Fixed <= 0) {
		return nil, configErr("max_score", fmt.Sprintf("fixed total must be a finite positive number, got %v", total.Fixed), nil)
	}
	return &Rubric{
		groups:   append([]GroupRule(nil), groups...),
		index:    index,
		fallback: fallback,
		total:    total,
	}, nil
}

// Groups returns a copy of the rules in match order.
func (r *Rubric) Groups() []GroupRule {
	return append([]GroupRule(nil), r.groups...)
}

// Group returns the named rule.
func (r *Rubric) Group(name string) (GroupRule, bool) {
	i, ok := r.index[name]
	if !ok {
		return GroupRule{}, false
	}
	return r.groups[i], true
}

// Fallback returns the group assigned to records no rule matches.
func (r *Rubric) Fallback() string { return r.fallback }

// Total returns the rubric's overall-maximum policy.
func (r *Rubric) Total() TotalPolicy { return r.total }

// MaxScore returns the overall maximum implied by the rubric.
func (r *Rubric) MaxScore() float64 {
	if r.total.Mode == Fixed {
		return r.total.Fixed
	}
	var sum float64
	for _, g := range r.groups {
		sum += g.MaxScore
	}
	return sum
}

// Classify returns the group for record. A validated rubric always resolves.
func (r *Rubric) Classify(record TestRecord) string {
	for _, g := range r.groups {
		if g.Matches(record.GroupKey) {
			return g.Name
		}
	}
	return r.fallback
}

func (r *Rubric) valid() bool {
	return r != nil && len(r.groups) > 0 && r.index != nil
}
