//go:build !unix

package mmap

import (
	"io"
	"os"
)

// Fallback: read the file into the heap. Same contract, no zero-copy.
func osMap(f *os.File, size int) ([]byte, func([]byte) error, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, nil, err
	}
	return data, func([]byte) error { return nil }, nil
}
