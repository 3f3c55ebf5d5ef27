package recgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordLoad is called after each load operation.
	// files and records are the counts actually produced, duration is the
	// total time taken, err is nil if successful.
	RecordLoad(files, records int, duration time.Duration, err error)

	// RecordLookup is called after each index probe.
	RecordLookup(hits int, duration time.Duration, err error)

	// RecordScan is called after each predicate scan.
	RecordScan(hits int, duration time.Duration, err error)

	// RecordAggregate is called after each aggregation query.
	RecordAggregate(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordLookup(int, time.Duration, error)   {}
func (NoopMetricsCollector) RecordScan(int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordAggregate(time.Duration, error)     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LoadCount           atomic.Int64
	LoadErrors          atomic.Int64
	LoadFiles           atomic.Int64
	LoadRecords         atomic.Int64
	LoadTotalNanos      atomic.Int64
	LookupCount         atomic.Int64
	LookupErrors        atomic.Int64
	ScanCount           atomic.Int64
	ScanErrors          atomic.Int64
	ScanTotalNanos      atomic.Int64
	AggregateCount      atomic.Int64
	AggregateErrors     atomic.Int64
	AggregateTotalNanos atomic.Int64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(files, records int, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.LoadFiles.Add(int64(files))
	b.LoadRecords.Add(int64(records))
}

// RecordLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLookup(hits int, duration time.Duration, err error) {
	b.LookupCount.Add(1)
	if err != nil {
		b.LookupErrors.Add(1)
	}
}

// RecordScan implements MetricsCollector.
func (b *BasicMetricsCollector) RecordScan(hits int, duration time.Duration, err error) {
	b.ScanCount.Add(1)
	b.ScanTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ScanErrors.Add(1)
	}
}

// RecordAggregate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAggregate(duration time.Duration, err error) {
	b.AggregateCount.Add(1)
	b.AggregateTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.AggregateErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LoadCount:       b.LoadCount.Load(),
		LoadErrors:      b.LoadErrors.Load(),
		LoadFiles:       b.LoadFiles.Load(),
		LoadRecords:     b.LoadRecords.Load(),
		LoadAvgNanos:    avgNanos(b.LoadTotalNanos.Load(), b.LoadCount.Load()),
		LookupCount:     b.LookupCount.Load(),
		LookupErrors:    b.LookupErrors.Load(),
		ScanCount:       b.ScanCount.Load(),
		ScanErrors:      b.ScanErrors.Load(),
		ScanAvgNanos:    avgNanos(b.ScanTotalNanos.Load(), b.ScanCount.Load()),
		AggregateCount:  b.AggregateCount.Load(),
		AggregateErrors: b.AggregateErrors.Load(),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LoadCount       int64
	LoadErrors      int64
	LoadFiles       int64
	LoadRecords     int64
	LoadAvgNanos    int64
	LookupCount     int64
	LookupErrors    int64
	ScanCount       int64
	ScanErrors      int64
	ScanAvgNanos    int64
	AggregateCount  int64
	AggregateErrors int64
}
