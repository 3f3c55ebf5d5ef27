// Package mmap provides read-only memory-mapped access to input files, with
// a heap-backed fallback on platforms without mmap support.
package mmap

import "os"

// File is a read-only view of a file's contents.
type File struct {
	// Data is the full file contents. It must not be written to.
	Data []byte

	f     *os.File
	unmap func([]byte) error
}

// Open maps path read-only. Empty files yield a File with empty Data.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	size := fi.Size()
	if size == 0 {
		return &File{f: f}, nil
	}

	data, unmap, err := osMap(f, int(size))
	if err != nil {
		f.Close()
		return nil, err
	}

	return &File{Data: data, f: f, unmap: unmap}, nil
}

// Close releases the mapping and the underlying file.
func (m *File) Close() error {
	if m == nil {
		return nil
	}

	var firstErr error
	if m.unmap != nil && m.Data != nil {
		if err := m.unmap(m.Data); err != nil {
			firstErr = err
		}
		m.Data = nil
		m.unmap = nil
	}
	if m.f != nil {
		if err := m.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		m.f = nil
	}
	return firstErr
}
