package task

import "errors"

// ErrInvalidPatterns is matched by every PatternsError.
var ErrInvalidPatterns = errors.New("invalid patterns")

// PatternsError rejects pattern input that is not a non-empty list of
// non-empty strings.
type PatternsError struct {
	// Value is the offending input.
	Value any
}

func (e *PatternsError) Error() string {
	return "Patterns must be a string or an array of strings"
}

func (e *PatternsError) Unwrap() error { return ErrInvalidPatterns }

// Validate checks the pattern list before any other work.
func Validate(patterns []string) error {
	if len(patterns) == 0 {
		return &PatternsError{Value: patterns}
	}
	for _, p := range patterns {
		if p == "" {
			return &PatternsError{Value: patterns}
		}
	}
	return nil
}
