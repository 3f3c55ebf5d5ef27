package csv

import "strconv"

// ToFloat converts a field to a float64, returning def for an empty field or
// one that fails to parse. It never returns an error.
func ToFloat(field string, def float64) float64 {
	if field == "" {
		return def
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return def
	}
	return v
}

// ToInt converts a field to an int, returning def for an empty field or one
// that fails to parse.
func ToInt(field string, def int) int {
	if field == "" {
		return def
	}
	v, err := strconv.Atoi(field)
	if err != nil {
		return def
	}
	return v
}
