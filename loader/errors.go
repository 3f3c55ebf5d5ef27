package loader

import "fmt"

// ResolveError indicates that the root input path could not be resolved at
// all. Per-file read failures are not errors; they are skipped.
//
// The underlying cause can be accessed via errors.Unwrap.
type ResolveError struct {
	Path  string
	cause error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve input path %q: %v", e.Path, e.cause)
}

func (e *ResolveError) Unwrap() error { return e.cause }
