package recgo

import (
	"context"
	"testing"

	"github.com/hupe1980/recgo/csv"
	"github.com/hupe1980/recgo/dispatch"
	"github.com/hupe1980/recgo/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct {
	A, B  string
	Value float64
}

func pairSchema() Schema[pair] {
	return Schema[pair]{
		MinFields: 2,
		Sentinels: []string{""},
		Parse: func(fields []string) (pair, bool) {
			p := pair{A: fields[0], B: fields[1]}
			if len(fields) > 2 {
				p.Value = csv.ToFloat(fields[2], 0)
			}
			return p, true
		},
	}
}

func allStrategies() []dispatch.Strategy {
	return append([]dispatch.Strategy{dispatch.Serial}, dispatch.Strategies...)
}

func TestRecgo(t *testing.T) {
	t.Run("LoadAndRangeQuery", func(t *testing.T) {
		dir := t.TempDir()
		file := testutil.WriteRows(t, dir, "data.csv", [][]string{
			{"A", "B", "10"},
			{"C", "D", "-5"},
			{"", "", ""},
		})

		for _, strategy := range allStrategies() {
			t.Run(strategy.String(), func(t *testing.T) {
				db, err := New(pairSchema(), WithWorkers[pair](4))
				require.NoError(t, err)
				defer db.Close()

				n, err := db.Load(context.Background(), file, strategy)
				require.NoError(t, err)
				// The blank row matches the "" sentinel and is dropped.
				assert.Equal(t, 2, n)
				assert.Equal(t, 2, db.Len())

				hits, err := db.Scan(context.Background(), strategy, func(p pair) bool {
					return p.Value >= 0 && p.Value <= 10
				})
				require.NoError(t, err)
				require.Len(t, hits, 1)
				assert.Equal(t, pair{A: "A", B: "B", Value: 10}, hits[0])
			})
		}
	})

	t.Run("LoadEquivalentAcrossStrategies", func(t *testing.T) {
		dir := t.TempDir()
		for f := 0; f < 8; f++ {
			rows := make([][]string, 0, 50)
			for i := 0; i < 50; i++ {
				rows = append(rows, []string{
					string(rune('a' + f)),
					string(rune('a' + i%26)),
					"1",
				})
			}
			testutil.WriteRows(t, dir, "part"+string(rune('0'+f))+".csv", rows)
		}

		db, err := New(pairSchema(), WithWorkers[pair](4))
		require.NoError(t, err)
		defer db.Close()

		_, err = db.Load(context.Background(), dir, dispatch.Serial)
		require.NoError(t, err)
		want := db.Records()

		for _, strategy := range dispatch.Strategies {
			_, err := db.Load(context.Background(), dir, strategy)
			require.NoError(t, err)
			assert.ElementsMatch(t, want, db.Records(), strategy.String())
		}
	})

	t.Run("FreshLoadReplacesStore", func(t *testing.T) {
		dir := t.TempDir()
		first := testutil.WriteRows(t, dir, "first.csv", [][]string{{"A", "B", "1"}, {"C", "D", "2"}})
		second := testutil.WriteRows(t, dir, "second.csv", [][]string{{"E", "F", "3"}})

		db, err := New(pairSchema(), WithIndex("a", func(p pair) string { return p.A }))
		require.NoError(t, err)
		defer db.Close()

		_, err = db.Load(context.Background(), first, dispatch.ForkJoin)
		require.NoError(t, err)
		require.Equal(t, 2, db.Len())

		_, err = db.Load(context.Background(), second, dispatch.SharedQueue)
		require.NoError(t, err)
		assert.Equal(t, 1, db.Len())

		// Index entries from the first load must be gone.
		hits, err := db.Lookup("a", "A")
		require.NoError(t, err)
		assert.Empty(t, hits)

		hits, err = db.Lookup("a", "E")
		require.NoError(t, err)
		assert.Len(t, hits, 1)
	})

	t.Run("CountByAcrossWorkerCounts", func(t *testing.T) {
		dir := t.TempDir()
		file := testutil.WriteRows(t, dir, "cats.csv", [][]string{
			{"r1", "x"},
			{"r2", "x"},
			{"r3", "y"},
			{"r4", "y"},
		})

		// Worker count 1, a moderate count, and more workers than records.
		for _, workers := range []int{1, 4, 16} {
			for _, strategy := range allStrategies() {
				db, err := New(pairSchema(), WithWorkers[pair](workers))
				require.NoError(t, err)

				_, err = db.Load(context.Background(), file, strategy)
				require.NoError(t, err)

				counts, err := db.CountBy(context.Background(), strategy, func(p pair) string { return p.B })
				require.NoError(t, err)
				assert.Equal(t, map[string]int{"x": 2, "y": 2}, counts,
					"workers=%d strategy=%s", workers, strategy)

				require.NoError(t, db.Close())
			}
		}
	})

	t.Run("MeanConditionedOnKey", func(t *testing.T) {
		dir := t.TempDir()
		file := testutil.WriteRows(t, dir, "vals.csv", [][]string{
			{"k", "x", "10"},
			{"k", "x", "20"},
			{"j", "y", "1000"},
			{"k", "x", "30"},
		})

		db, err := New(pairSchema(), WithWorkers[pair](4))
		require.NoError(t, err)
		defer db.Close()

		_, err = db.Load(context.Background(), file, dispatch.PartitionedQueue)
		require.NoError(t, err)

		for _, strategy := range allStrategies() {
			mean, err := db.Mean(context.Background(), strategy,
				func(p pair) float64 { return p.Value },
				func(p pair) bool { return p.A == "k" },
			)
			require.NoError(t, err)
			assert.InDelta(t, 20.0, mean, 1e-9, strategy.String())
		}
	})

	t.Run("MeanOnEmptyStore", func(t *testing.T) {
		db, err := New(pairSchema())
		require.NoError(t, err)
		defer db.Close()

		mean, err := db.Mean(context.Background(), dispatch.ForkJoin,
			func(p pair) float64 { return p.Value }, nil)
		require.NoError(t, err)
		assert.Zero(t, mean)
	})

	t.Run("UnknownIndex", func(t *testing.T) {
		db, err := New(pairSchema())
		require.NoError(t, err)
		defer db.Close()

		_, err = db.Lookup("nope", "x")
		var unknown *ErrUnknownIndex
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "nope", unknown.Name)
	})

	t.Run("NilParseRejected", func(t *testing.T) {
		_, err := New(Schema[pair]{})
		assert.ErrorIs(t, err, ErrNilParse)
	})

	t.Run("ClosedInstance", func(t *testing.T) {
		db, err := New(pairSchema())
		require.NoError(t, err)
		require.NoError(t, db.Close())
		require.NoError(t, db.Close())

		_, err = db.Load(context.Background(), ".", dispatch.Serial)
		assert.ErrorIs(t, err, ErrClosed)
		_, err = db.Scan(context.Background(), dispatch.Serial, func(pair) bool { return true })
		assert.ErrorIs(t, err, ErrClosed)
	})

	t.Run("CollectsMetrics", func(t *testing.T) {
		dir := t.TempDir()
		file := testutil.WriteRows(t, dir, "m.csv", [][]string{{"A", "B", "1"}})

		metrics := &BasicMetricsCollector{}
		db, err := New(pairSchema(), WithMetricsCollector[pair](metrics))
		require.NoError(t, err)
		defer db.Close()

		_, err = db.Load(context.Background(), file, dispatch.SharedQueue)
		require.NoError(t, err)
		_, err = db.Scan(context.Background(), dispatch.ForkJoin, func(pair) bool { return true })
		require.NoError(t, err)

		stats := metrics.GetStats()
		assert.Equal(t, int64(1), stats.LoadCount)
		assert.Equal(t, int64(1), stats.LoadRecords)
		assert.Equal(t, int64(1), stats.ScanCount)
		assert.Zero(t, stats.LoadErrors)
	})
}

func TestBuilder(t *testing.T) {
	t.Run("Build", func(t *testing.T) {
		db, err := NewBuilder(pairSchema()).
			Index("a", func(p pair) string { return p.A }).
			Workers(2).
			Metrics(&BasicMetricsCollector{}).
			Build()
		require.NoError(t, err)
		defer db.Close()

		assert.Equal(t, 2, db.Workers())
	})

	t.Run("Immutable", func(t *testing.T) {
		base := NewBuilder(pairSchema()).Workers(2)
		withIndex := base.Index("a", func(p pair) string { return p.A })
		justBase, err := base.Build()
		require.NoError(t, err)
		defer justBase.Close()

		db, err := withIndex.Build()
		require.NoError(t, err)
		defer db.Close()

		// The fork got the index; the base did not.
		_, err = justBase.Lookup("a", "x")
		assert.Error(t, err)
		_, err = db.Lookup("a", "x")
		assert.NoError(t, err)
	})

	t.Run("SharedPoolNotClosed", func(t *testing.T) {
		pool := dispatch.NewWorkerPool(2)
		defer pool.Close()

		db, err := NewBuilder(pairSchema()).Pool(pool).Build()
		require.NoError(t, err)
		require.NoError(t, db.Close())

		// The injected pool must still accept work.
		err = pool.Submit(context.Background(), func() {})
		assert.NoError(t, err)
	})
}
