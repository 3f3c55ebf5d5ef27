package dispatch

// Chunk is a contiguous half-open position range [Start, End) into a record
// sequence. Chunks are the task shape used by scan and aggregation queries.
type Chunk struct {
	Start int
	End   int
}

// Chunks partitions [0, n) into ranges sized for workers. The range is cut
// into roughly workers*4 pieces rather than exactly workers pieces so that
// dynamic strategies can balance uneven progress; the chunk size is clamped
// to at least 1 so tiny stores still make progress.
//
// The returned chunks cover [0, n) exactly: no gaps, no overlaps.
func Chunks(n, workers int) []Chunk {
	if n <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}

	size := n / (workers * 4)
	if size < 1 {
		size = 1
	}

	chunks := make([]Chunk, 0, n/size+1)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		chunks = append(chunks, Chunk{Start: start, End: end})
	}
	return chunks
}
