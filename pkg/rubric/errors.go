package rubric

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every rubric configuration failure.
// It is fatal to the scoring call and never retried.
var ErrConfiguration = errors.New("rubric: invalid configuration")

// ConfigError describes a configuration problem at a document path.
type ConfigError struct {
	Field  string // e.g. "fallback_group", "groups.core.pattern"
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("rubric: %s: %s", e.Field, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *ConfigError) Unwrap() error { return e.Err }

// Is reports ErrConfiguration as a match.
func (e *ConfigError) Is(target error) bool { return target == ErrConfiguration }

func configErr(field, reason string, err error) error {
	return &ConfigError{Field: field, Reason: reason, Err: err}
}
