package recgo

import (
	"errors"
	"fmt"
)

var (
	// ErrNilParse is returned by New when the schema has no Parse function.
	ErrNilParse = errors.New("schema parse function must not be nil")

	// ErrClosed is returned for operations on a closed instance.
	ErrClosed = errors.New("recgo instance is closed")
)

// ErrUnknownIndex indicates a lookup against an index name that was never
// defined.
type ErrUnknownIndex struct {
	Name string
}

func (e *ErrUnknownIndex) Error() string {
	return fmt.Sprintf("unknown index: %q", e.Name)
}
