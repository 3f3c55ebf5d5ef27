package loader

import "strings"

// DefaultExtension is the input extension assumed when a schema names none.
const DefaultExtension = ".csv"

// Schema describes one delimited-record format: how files are selected, how
// rows are filtered, and how a surviving row becomes a record. The engine is
// agnostic to field semantics beyond what the schema encodes.
type Schema[R any] struct {
	// Delimiter separates fields. Zero means comma.
	Delimiter byte

	// MinFields is the minimum field count a row needs; shorter rows are
	// skipped.
	MinFields int

	// Sentinels lists first-field values that mark header or filler rows to
	// skip. An empty first field is only skipped if "" is listed.
	Sentinels []string

	// Extensions lists accepted file extensions (with dot). Empty means
	// {".csv"}. Compressed variants (<ext>.zst, <ext>.gz, <ext>.lz4) are
	// accepted implicitly.
	Extensions []string

	// Exclude, if set, drops a discovered file by base name. This is how a
	// domain skips non-record files that share the data extension.
	Exclude func(name string) bool

	// Parse turns a tokenized row into a record. Returning ok=false skips
	// the row. Parse must not retain the fields slice.
	Parse func(fields []string) (R, bool)
}

func (s Schema[R]) delimiter() byte {
	if s.Delimiter == 0 {
		return ','
	}
	return s.Delimiter
}

func (s Schema[R]) extensions() []string {
	if len(s.Extensions) == 0 {
		return []string{DefaultExtension}
	}
	return s.Extensions
}

func (s Schema[R]) skipRow(fields []string) bool {
	if len(fields) < s.MinFields {
		return true
	}
	if len(s.Sentinels) > 0 && len(fields) > 0 {
		for _, sentinel := range s.Sentinels {
			if fields[0] == sentinel {
				return true
			}
		}
	}
	return false
}

// ExcludeSubstring returns an exclusion predicate that drops files whose
// base name contains sub.
func ExcludeSubstring(sub string) func(name string) bool {
	return func(name string) bool {
		return strings.Contains(name, sub)
	}
}
