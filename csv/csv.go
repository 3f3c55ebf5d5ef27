// Package csv provides the thin text collaborators the loader consumes:
// a delimiter tokenizer that honors quoted fields, a line reader, and
// never-failing numeric coercion helpers.
//
// The tokenizer is deliberately more forgiving than encoding/csv: rows may
// have any field count, a quote may open mid-field, and malformed quoting
// never fails a row. Those are properties of the files this module ingests,
// not of RFC 4180.
package csv

import (
	"bufio"
	"io"
	"strings"
)

// Tokenize splits a single line into fields on delimiter. Inside a quoted
// section the delimiter is literal, and a doubled quote is an escaped quote
// character.
func Tokenize(line string, delimiter byte) []string {
	fields := make([]string, 0, 8)

	var (
		field    strings.Builder
		inQuotes bool
	)

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				field.WriteByte('"')
				i++ // skip the second quote
			} else {
				inQuotes = !inQuotes
			}
		case c == delimiter && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteByte(c)
		}
	}

	return append(fields, field.String())
}

// ReadAll reads delimited rows from r until EOF. Empty lines are skipped and
// a trailing carriage return is stripped, so CRLF input parses like LF input.
//
// Line breaks inside quoted fields are not supported; the source data never
// contains them and treating every newline as a row boundary keeps the
// reader single-pass.
func ReadAll(r io.Reader, delimiter byte) ([][]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	var rows [][]string
	for scanner.Scan() {
		line := scanner.Text()
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		rows = append(rows, Tokenize(line, delimiter))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return rows, nil
}
