// Package store holds loaded records and their secondary indices.
//
// The store is populated wholesale by a load (Replace + Rebuild) and read by
// queries; concurrent load-while-query access is unsupported. Secondary
// indices map a key value to a roaring bitmap of record positions and are
// rebuilt from scratch after every load, never incrementally.
package store

import (
	"context"

	"github.com/hupe1980/recgo/dispatch"
)

// Store is an ordered sequence of records plus named secondary indices.
// Record order is an artifact of load, not semantically meaningful.
type Store[R any] struct {
	records []R
	indexes map[string]*Index[R]
}

// New creates an empty store.
func New[R any]() *Store[R] {
	return &Store[R]{
		indexes: make(map[string]*Index[R]),
	}
}

// DefineIndex registers a secondary index that keys records by extract.
// Indices are defined once, before the first load; defining the same name
// twice replaces the extractor.
func (s *Store[R]) DefineIndex(name string, extract func(R) string) {
	s.indexes[name] = newIndex(extract)
}

// Replace discards the current record sequence and installs records as the
// new backing sequence. Indices are stale until Rebuild runs.
func (s *Store[R]) Replace(records []R) {
	s.records = records
}

// Len returns the number of records.
func (s *Store[R]) Len() int {
	return len(s.records)
}

// View returns the backing record sequence. Callers must treat it as
// read-only; it is shared with every concurrent query.
func (s *Store[R]) View() []R {
	return s.records
}

// Index returns the named index, or nil if it was never defined.
func (s *Store[R]) Index(name string) *Index[R] {
	return s.indexes[name]
}

// Lookup probes the named index and returns all records whose key equals
// key, in unspecified order. ok is false if no such index is defined.
func (s *Store[R]) Lookup(name, key string) (results []R, ok bool) {
	ix := s.indexes[name]
	if ix == nil {
		return nil, false
	}
	return ix.Lookup(key, s.records), true
}

// Rebuild clears every index and rebuilds it by scanning the full record
// sequence under the given strategy. Key extraction runs in the workers;
// the insertions themselves happen in the per-worker merge section, so index
// mutation stays single-writer.
//
// After Rebuild returns, every index is fully consistent with the sequence.
func (s *Store[R]) Rebuild(ctx context.Context, d *dispatch.Dispatcher, strategy dispatch.Strategy) error {
	for _, ix := range s.indexes {
		ix.reset()
	}
	if len(s.indexes) == 0 || len(s.records) == 0 {
		return nil
	}

	chunks := dispatch.Chunks(len(s.records), d.Workers())

	for _, ix := range s.indexes {
		err := dispatch.Reduce(ctx, d, strategy, chunks,
			func() []posting { return nil },
			func(acc []posting, c dispatch.Chunk) []posting {
				for pos := c.Start; pos < c.End; pos++ {
					acc = append(acc, posting{
						key: ix.extract(s.records[pos]),
						pos: uint32(pos),
					})
				}
				return acc
			},
			func(acc []posting) {
				ix.insert(acc)
			},
		)
		if err != nil {
			return err
		}
	}
	return nil
}
