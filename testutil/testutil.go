// Package testutil provides fixture helpers shared by tests and benchmarks:
// delimited file writers and a seeded random corpus generator.
package testutil

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// RNG encapsulates a seeded random number generator. It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// WriteFile writes content to dir/name, creating parent directories.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteRows joins rows with commas and newlines and writes the result to
// dir/name. Fields are written verbatim; callers quote as needed.
func WriteRows(t testing.TB, dir, name string, rows [][]string) string {
	t.Helper()

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(strings.Join(row, ","))
		sb.WriteByte('\n')
	}
	return WriteFile(t, dir, name, sb.String())
}

// SensorCorpus writes numFiles reading files with rowsPerFile rows each
// into dir and returns the total row count. Rows cycle deterministically
// through a small set of pollutants, sites, and categories so counts per
// group are predictable.
func SensorCorpus(t testing.TB, dir string, numFiles, rowsPerFile int) int {
	t.Helper()

	pollutants := []string{"PM2.5", "OZONE", "CO", "NO2"}
	sites := []string{"Downtown", "Hillside", "Harbor"}

	rng := NewRNG(42)
	total := 0
	for f := 0; f < numFiles; f++ {
		rows := make([][]string, 0, rowsPerFile)
		for i := 0; i < rowsPerFile; i++ {
			n := f*rowsPerFile + i
			rows = append(rows, []string{
				fmt.Sprintf("%.4f", 30+rng.Float64()*10),   // latitude
				fmt.Sprintf("%.4f", -120+rng.Float64()*10), // longitude
				fmt.Sprintf("2024-01-01T%02d:00", n%24),
				pollutants[n%len(pollutants)],
				fmt.Sprintf("%.1f", rng.Float64()*100),
				"UG/M3",
				fmt.Sprintf("%.1f", rng.Float64()*100),
				fmt.Sprintf("%d", rng.Intn(300)),
				fmt.Sprintf("%d", 1+n%5),
				sites[n%len(sites)],
				"Air Agency",
				fmt.Sprintf("%06d", n),
				fmt.Sprintf("840%06d", n),
			})
			total++
		}
		WriteRows(t, dir, fmt.Sprintf("readings-%03d.csv", f), rows)
	}
	return total
}
