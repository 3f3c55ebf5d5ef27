// Package recgo provides an embedded in-memory store and parallel query
// engine for large collections of delimited records.
//
// Recgo ingests CSV-style files spread across many directories, builds
// roaring-bitmap secondary indices over the loaded records, and answers
// point lookups, predicate scans, and aggregations. Bulk loading and every
// scan/aggregation run through the same task-distribution core, selectable
// per call between three strategies (plus a serial baseline):
//
//	dispatch.ForkJoin         // fixed contiguous ranges, one per worker
//	dispatch.SharedQueue      // dynamic pull from one shared queue
//	dispatch.PartitionedQueue // static round-robin, one queue per worker
//
// # Quick Start
//
//	db, _ := recgo.New(schema,
//	    recgo.WithIndex("pollutant", func(r Reading) string { return r.Pollutant }),
//	)
//	defer db.Close()
//
//	n, _ := db.Load(ctx, "./data", dispatch.SharedQueue)
//
//	hits, _ := db.Lookup("pollutant", "PM2.5")                     // index probe
//	hot, _ := db.Scan(ctx, dispatch.ForkJoin, func(r Reading) bool {
//	    return r.Concentration > 50
//	})
//
// # Domains
//
// The airquality and worldbank packages are thin typed layers over this
// facade for the two record formats the module ships schemas for. The
// engine itself is agnostic to field semantics: any Schema works.
//
// # Concurrency Model
//
// A load replaces the store wholesale and rebuilds every index; queries may
// run concurrently with each other but never with a load. Result sets are
// content-equivalent across strategies and runs, but their order is
// unspecified.
package recgo
