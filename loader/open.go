package loader

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"

	"github.com/hupe1980/recgo/csv"
	"github.com/hupe1980/recgo/internal/mmap"
	"github.com/hupe1980/recgo/resource"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// readRows reads every row of one input file, decompressing by extension.
// Plain files go through a read-only mapping; compressed files stream
// through the matching decoder. Reads are throttled by rc when configured.
func readRows(ctx context.Context, path string, delimiter byte, rc *resource.Controller) ([][]string, error) {
	if err := rc.AcquireFile(ctx); err != nil {
		return nil, err
	}
	defer rc.ReleaseFile()

	switch {
	case strings.HasSuffix(path, ".zst"):
		return streamRows(ctx, path, delimiter, rc, func(r io.Reader) (io.Reader, func(), error) {
			zr, err := zstd.NewReader(r)
			if err != nil {
				return nil, nil, err
			}
			return zr, zr.Close, nil
		})

	case strings.HasSuffix(path, ".gz"):
		return streamRows(ctx, path, delimiter, rc, func(r io.Reader) (io.Reader, func(), error) {
			gr, err := gzip.NewReader(r)
			if err != nil {
				return nil, nil, err
			}
			return gr, func() { gr.Close() }, nil
		})

	case strings.HasSuffix(path, ".lz4"):
		return streamRows(ctx, path, delimiter, rc, func(r io.Reader) (io.Reader, func(), error) {
			return lz4.NewReader(r), func() {}, nil
		})

	default:
		m, err := mmap.Open(path)
		if err != nil {
			return nil, err
		}
		defer m.Close()

		if err := rc.AcquireIO(ctx, len(m.Data)); err != nil {
			return nil, err
		}
		return csv.ReadAll(bytes.NewReader(m.Data), delimiter)
	}
}

func streamRows(ctx context.Context, path string, delimiter byte, rc *resource.Controller, wrap func(io.Reader) (io.Reader, func(), error)) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var raw io.Reader = f
	if rc != nil {
		raw = resource.NewRateLimitedReader(ctx, raw, rc)
	}

	r, closeFn, err := wrap(raw)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	return csv.ReadAll(r, delimiter)
}
