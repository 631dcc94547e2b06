package provider

import "fmt"

// PartialError is returned together with results when errors were collected
// instead of aborting the operation.
type PartialError struct {
	Cause error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("completed with errors: %v", e.Cause)
}

func (e *PartialError) Unwrap() error { return e.Cause }
