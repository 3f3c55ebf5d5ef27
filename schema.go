package recgo

import "github.com/hupe1980/recgo/loader"

// Schema describes a delimited-record format: delimiter, row filters, file
// selection, and the row-to-record parse function. See the loader package
// for field documentation.
type Schema[R any] = loader.Schema[R]

// ExcludeSubstring returns a file exclusion predicate matching base names
// that contain sub. Re-exported from the loader package.
func ExcludeSubstring(sub string) func(name string) bool {
	return loader.ExcludeSubstring(sub)
}
