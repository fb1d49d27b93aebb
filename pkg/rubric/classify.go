package rubric

import "fmt"

// Classify returns the name of the first rule whose pattern is found in
// record.GroupKey, or fallback when none is. It fails with ErrConfiguration
// when a rule is uncompiled, or when nothing matched and fallback names no rule.
func Classify(record TestRecord, rules []GroupRule, fallback string) (string, error) {
	for _, rule := range rules {
		if rule.re == nil {
			return "", configErr("groups."+rule.Name+".pattern", "rule was not built with NewGroupRule", nil)
		}
		if rule.re.MatchString(record.GroupKey) {
			return rule.Name, nil
		}
	}
	for _, rule := range rules {
		if rule.Name == fallback {
			return fallback, nil
		}
	}
	return "", configErr("fallback_group", fmt.Sprintf("%q is not a configured group", fallback), nil)
}
