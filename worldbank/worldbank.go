// Package worldbank adapts the record engine to World Bank population
// indicator files: four identifying columns followed by one value per year
// starting at 1960. Metadata companion files are excluded by name.
package worldbank

import (
	"context"

	"github.com/hupe1980/recgo"
	"github.com/hupe1980/recgo/csv"
	"github.com/hupe1980/recgo/dispatch"
)

// Index names registered by Open.
const (
	IndexCountry     = "country"
	IndexRegion      = "region"
	IndexIncomeGroup = "income-group"
)

const (
	// BaseYear is the year of the first value column.
	BaseYear = 1960

	// MaxYears caps the number of value columns read per row.
	MaxYears = 64

	minFields   = 4
	firstValCol = 4
)

// Indicator is one country/indicator row with its yearly values. Immutable
// after construction.
type Indicator struct {
	CountryName   string
	CountryCode   string
	IndicatorName string
	IndicatorCode string

	// Values holds one value per year starting at BaseYear; missing or
	// malformed cells are 0.
	Values []float64

	// Region and IncomeGroup come from country metadata, not the indicator
	// row itself; they are empty unless supplied by the caller.
	Region      string
	IncomeGroup string
}

// ValueForYear returns the value for a year, or 0 when the year is outside
// the covered range.
func (i Indicator) ValueForYear(year int) float64 {
	idx := year - BaseYear
	if idx < 0 || idx >= len(i.Values) {
		return 0
	}
	return i.Values[idx]
}

// Total sums every yearly value.
func (i Indicator) Total() float64 {
	var total float64
	for _, v := range i.Values {
		total += v
	}
	return total
}

// Mean averages across all yearly values; an empty row yields 0.
func (i Indicator) Mean() float64 {
	if len(i.Values) == 0 {
		return 0
	}
	return i.Total() / float64(len(i.Values))
}

// MeanForYearRange averages the positive values in [startYear, endYear].
// Zero cells count as missing data, not as zero population.
func (i Indicator) MeanForYearRange(startYear, endYear int) float64 {
	var (
		total float64
		count int
	)
	for year := startYear; year <= endYear; year++ {
		if v := i.ValueForYear(year); v > 0 {
			total += v
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// Schema returns the delimited-record schema for indicator files. Rows
// with fewer than four fields, header rows, and rows with an empty first
// field are skipped; Metadata_ companion files are excluded entirely.
func Schema() recgo.Schema[Indicator] {
	return recgo.Schema[Indicator]{
		MinFields: minFields,
		Sentinels: []string{"Data Source", "Country Name", ""},
		Exclude:   recgo.ExcludeSubstring("Metadata_"),
		Parse: func(fields []string) (Indicator, bool) {
			ind := Indicator{
				CountryName:   fields[0],
				CountryCode:   fields[1],
				IndicatorName: fields[2],
				IndicatorCode: fields[3],
			}

			last := len(fields)
			if last > firstValCol+MaxYears {
				last = firstValCol + MaxYears
			}
			ind.Values = make([]float64, 0, last-firstValCol)
			for i := firstValCol; i < last; i++ {
				ind.Values = append(ind.Values, csv.ToFloat(fields[i], 0))
			}

			return ind, true
		},
	}
}

// Dataset is a typed facade over the record engine for population
// indicators.
type Dataset struct {
	db *recgo.Recgo[Indicator]
}

// Open creates an empty Dataset with the country, region, and income-group
// indices registered.
func Open(optFns ...recgo.Option[Indicator]) (*Dataset, error) {
	opts := append([]recgo.Option[Indicator]{
		recgo.WithIndex(IndexCountry, func(i Indicator) string { return i.CountryCode }),
		recgo.WithIndex(IndexRegion, func(i Indicator) string { return i.Region }),
		recgo.WithIndex(IndexIncomeGroup, func(i Indicator) string { return i.IncomeGroup }),
	}, optFns...)

	db, err := recgo.New(Schema(), opts...)
	if err != nil {
		return nil, err
	}
	return &Dataset{db: db}, nil
}

// Load ingests a file or directory of indicator files under the given
// strategy and returns the record count.
func (d *Dataset) Load(ctx context.Context, path string, strategy dispatch.Strategy) (int, error) {
	return d.db.Load(ctx, path, strategy)
}

// Len returns the number of loaded indicators.
func (d *Dataset) Len() int {
	return d.db.Len()
}

// Close releases the dataset's resources.
func (d *Dataset) Close() error {
	return d.db.Close()
}

// ByCountry probes the country-code index directly.
func (d *Dataset) ByCountry(countryCode string) ([]Indicator, error) {
	return d.db.Lookup(IndexCountry, countryCode)
}

// ByRegion probes the region index directly.
func (d *Dataset) ByRegion(region string) ([]Indicator, error) {
	return d.db.Lookup(IndexRegion, region)
}

// ByIncomeGroup probes the income-group index directly.
func (d *Dataset) ByIncomeGroup(incomeGroup string) ([]Indicator, error) {
	return d.db.Lookup(IndexIncomeGroup, incomeGroup)
}

// ByPopulationRange returns indicators whose value for year lies in
// [min, max], bounds inclusive.
func (d *Dataset) ByPopulationRange(ctx context.Context, strategy dispatch.Strategy, min, max float64, year int) ([]Indicator, error) {
	return d.db.Scan(ctx, strategy, func(i Indicator) bool {
		v := i.ValueForYear(year)
		return v >= min && v <= max
	})
}

// ByYearRange returns indicators with at least one positive value in
// [startYear, endYear].
func (d *Dataset) ByYearRange(ctx context.Context, strategy dispatch.Strategy, startYear, endYear int) ([]Indicator, error) {
	return d.db.Scan(ctx, strategy, func(i Indicator) bool {
		for year := startYear; year <= endYear; year++ {
			if i.ValueForYear(year) > 0 {
				return true
			}
		}
		return false
	})
}

// MeanPopulation returns the mean value for year across the indicators of
// one country code.
func (d *Dataset) MeanPopulation(ctx context.Context, strategy dispatch.Strategy, countryCode string, year int) (float64, error) {
	return d.db.Mean(ctx, strategy,
		func(i Indicator) float64 { return i.ValueForYear(year) },
		func(i Indicator) bool { return i.CountryCode == countryCode },
	)
}

// CountByRegion counts indicators grouped by region.
func (d *Dataset) CountByRegion(ctx context.Context, strategy dispatch.Strategy) (map[string]int, error) {
	return d.db.CountBy(ctx, strategy, func(i Indicator) string { return i.Region })
}

// CountByIncomeGroup counts indicators grouped by income group.
func (d *Dataset) CountByIncomeGroup(ctx context.Context, strategy dispatch.Strategy) (map[string]int, error) {
	return d.db.CountBy(ctx, strategy, func(i Indicator) string { return i.IncomeGroup })
}
