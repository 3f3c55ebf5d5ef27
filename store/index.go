package store

import (
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// posting is one (key, position) pair produced during a rebuild.
type posting struct {
	key string
	pos uint32
}

// Index maps a key value to the set of record positions sharing that key.
// Postings are roaring bitmaps, so a probe iterates positions in compressed
// form instead of walking a slice per key.
type Index[R any] struct {
	mu       sync.RWMutex
	extract  func(R) string
	postings map[string]*roaring.Bitmap
}

func newIndex[R any](extract func(R) string) *Index[R] {
	return &Index[R]{
		extract:  extract,
		postings: make(map[string]*roaring.Bitmap),
	}
}

func (ix *Index[R]) reset() {
	ix.mu.Lock()
	ix.postings = make(map[string]*roaring.Bitmap)
	ix.mu.Unlock()
}

// insert adds a batch of postings. Batches arrive from the merge section of
// a rebuild, one per worker.
func (ix *Index[R]) insert(batch []posting) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	for _, p := range batch {
		bm, ok := ix.postings[p.key]
		if !ok {
			bm = roaring.New()
			ix.postings[p.key] = bm
		}
		bm.Add(p.pos)
	}
}

// Lookup collects the records at every position indexed under key.
func (ix *Index[R]) Lookup(key string, records []R) []R {
	ix.mu.RLock()
	bm := ix.postings[key]
	ix.mu.RUnlock()

	if bm == nil {
		return nil
	}

	results := make([]R, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		results = append(results, records[it.Next()])
	}
	return results
}

// Cardinality returns the number of positions indexed under key.
func (ix *Index[R]) Cardinality(key string) uint64 {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	bm := ix.postings[key]
	if bm == nil {
		return 0
	}
	return bm.GetCardinality()
}

// Keys returns every distinct key in the index, in unspecified order.
func (ix *Index[R]) Keys() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	keys := make([]string, 0, len(ix.postings))
	for k := range ix.postings {
		keys = append(keys, k)
	}
	return keys
}
