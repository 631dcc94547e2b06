package pattern

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// SyntaxError is returned by Compile for a pattern the matcher cannot parse,
// for example an unterminated character class.
type SyntaxError struct {
	Pattern string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid glob pattern %q", e.Pattern)
}

func (e *SyntaxError) Unwrap() error { return doublestar.ErrBadPattern }
