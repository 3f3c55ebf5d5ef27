package recgo_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hupe1980/recgo"
	"github.com/hupe1980/recgo/csv"
	"github.com/hupe1980/recgo/dispatch"
)

type city struct {
	Name       string
	Country    string
	Population float64
}

// Example demonstrates loading a delimited file and querying it under a
// parallel strategy.
func Example() {
	dir, err := os.MkdirTemp("", "recgo")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "cities.csv")
	data := "Berlin,DE,3.7\nHamburg,DE,1.9\nParis,FR,2.1\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		log.Fatal(err)
	}

	db, err := recgo.New(recgo.Schema[city]{
		MinFields: 3,
		Parse: func(fields []string) (city, bool) {
			return city{
				Name:       fields[0],
				Country:    fields[1],
				Population: csv.ToFloat(fields[2], 0),
			}, true
		},
	}, recgo.WithIndex("country", func(c city) string { return c.Country }))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()

	n, err := db.Load(ctx, path, dispatch.SharedQueue)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("records:", n)

	german, err := db.Lookup("country", "DE")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("DE cities:", len(german))

	counts, err := db.CountBy(ctx, dispatch.ForkJoin, func(c city) string { return c.Country })
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("FR count:", counts["FR"])

	// Output:
	// records: 3
	// DE cities: 2
	// FR count: 1
}

// Example_builder demonstrates the immutable fluent builder.
func Example_builder() {
	db, err := recgo.NewBuilder(recgo.Schema[city]{
		MinFields: 3,
		Parse: func(fields []string) (city, bool) {
			return city{Name: fields[0], Country: fields[1]}, true
		},
	}).
		Index("country", func(c city) string { return c.Country }).
		Workers(4).
		Build()
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	fmt.Println("workers:", db.Workers())
	// Output: workers: 4
}
