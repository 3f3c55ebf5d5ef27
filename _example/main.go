package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hupe1980/recgo/airquality"
	"github.com/hupe1980/recgo/dispatch"
)

func main() {
	numFiles := 24
	rowsPerFile := 5000

	dir, err := os.MkdirTemp("", "recgo-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	total := writeCorpus(dir, numFiles, rowsPerFile)

	fmt.Println("--- Corpus ---")
	fmt.Println("Files:", numFiles)
	fmt.Println("Rows:", total)
	fmt.Println()

	ctx := context.Background()

	fmt.Println("--- Load ---")

	d, err := airquality.Open()
	if err != nil {
		log.Fatal(err)
	}
	defer d.Close()

	for _, strategy := range dispatch.Strategies {
		start := time.Now()

		n, err := d.Load(ctx, dir, strategy)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("%-18s %d records in %v\n", strategy, n, time.Since(start))
	}

	fmt.Println()
	fmt.Println("--- Query ---")

	for _, strategy := range dispatch.Strategies {
		start := time.Now()

		hits, err := d.ByConcentrationRange(ctx, strategy, 25, 75)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("%-18s %d in range in %v\n", strategy, len(hits), time.Since(start))
	}

	fmt.Println()
	fmt.Println("--- Aggregate ---")

	counts, err := d.CountByPollutant(ctx, dispatch.SharedQueue)
	if err != nil {
		log.Fatal(err)
	}

	for pollutant, n := range counts {
		fmt.Printf("%-8s %d\n", pollutant, n)
	}

	mean, err := d.MeanConcentration(ctx, dispatch.PartitionedQueue, "PM2.5")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\nMean PM2.5 concentration: %.2f\n", mean)
}

func writeCorpus(dir string, numFiles, rowsPerFile int) int {
	pollutants := []string{"PM2.5", "OZONE", "CO", "NO2"}
	sites := []string{"Downtown", "Hillside", "Harbor"}

	rng := rand.New(rand.NewSource(4711)) // nolint gosec

	total := 0
	for f := 0; f < numFiles; f++ {
		var sb strings.Builder
		for i := 0; i < rowsPerFile; i++ {
			n := f*rowsPerFile + i
			fmt.Fprintf(&sb, "%.4f,%.4f,2024-01-01T%02d:00,%s,%.1f,UG/M3,%.1f,%d,%d,%s,Air Agency,%06d,840%06d\n",
				30+rng.Float64()*10,
				-120+rng.Float64()*10,
				n%24,
				pollutants[n%len(pollutants)],
				rng.Float64()*100,
				rng.Float64()*100,
				rng.Intn(300),
				1+n%5,
				sites[n%len(sites)],
				n,
				n,
			)
			total++
		}

		path := filepath.Join(dir, fmt.Sprintf("readings-%03d.csv", f))
		if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
			log.Fatal(err)
		}
	}
	return total
}
