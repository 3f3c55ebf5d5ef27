// Package airquality adapts the record engine to air monitoring sensor
// readings: 13 comma-separated columns per row, one row per measurement.
package airquality

import (
	"context"
	"strconv"

	"github.com/hupe1980/recgo"
	"github.com/hupe1980/recgo/csv"
	"github.com/hupe1980/recgo/dispatch"
)

// Index names registered by Open.
const (
	IndexPollutant = "pollutant"
	IndexSite      = "site"
)

// numFields is the column count of a valid reading row.
const numFields = 13

// Reading is one sensor measurement. Immutable after construction.
type Reading struct {
	Latitude         float64
	Longitude        float64
	Timestamp        string
	Pollutant        string
	Concentration    float64
	Unit             string
	RawConcentration float64
	AQI              int
	Category         int
	SiteName         string
	AgencyName       string
	AQSID            string
	FullAQSID        string
}

// Schema returns the delimited-record schema for sensor readings. Rows with
// fewer than 13 fields are skipped; malformed numeric fields default to 0.
func Schema() recgo.Schema[Reading] {
	return recgo.Schema[Reading]{
		MinFields: numFields,
		Parse: func(fields []string) (Reading, bool) {
			return Reading{
				Latitude:         csv.ToFloat(fields[0], 0),
				Longitude:        csv.ToFloat(fields[1], 0),
				Timestamp:        fields[2],
				Pollutant:        fields[3],
				Concentration:    csv.ToFloat(fields[4], 0),
				Unit:             fields[5],
				RawConcentration: csv.ToFloat(fields[6], 0),
				AQI:              csv.ToInt(fields[7], 0),
				Category:         csv.ToInt(fields[8], 0),
				SiteName:         fields[9],
				AgencyName:       fields[10],
				AQSID:            fields[11],
				FullAQSID:        fields[12],
			}, true
		},
	}
}

// Dataset is a typed facade over the record engine for sensor readings.
type Dataset struct {
	db *recgo.Recgo[Reading]
}

// Open creates an empty Dataset. The pollutant and site indices are always
// registered; additional options are passed through.
func Open(optFns ...recgo.Option[Reading]) (*Dataset, error) {
	opts := append([]recgo.Option[Reading]{
		recgo.WithIndex(IndexPollutant, func(r Reading) string { return r.Pollutant }),
		recgo.WithIndex(IndexSite, func(r Reading) string { return r.SiteName }),
	}, optFns...)

	db, err := recgo.New(Schema(), opts...)
	if err != nil {
		return nil, err
	}
	return &Dataset{db: db}, nil
}

// Load ingests a file or directory of reading files under the given
// strategy and returns the record count.
func (d *Dataset) Load(ctx context.Context, path string, strategy dispatch.Strategy) (int, error) {
	return d.db.Load(ctx, path, strategy)
}

// Len returns the number of loaded readings.
func (d *Dataset) Len() int {
	return d.db.Len()
}

// Close releases the dataset's resources.
func (d *Dataset) Close() error {
	return d.db.Close()
}

// ByPollutant probes the pollutant index directly.
func (d *Dataset) ByPollutant(pollutant string) ([]Reading, error) {
	return d.db.Lookup(IndexPollutant, pollutant)
}

// ByConcentrationRange returns readings with Concentration in [min, max],
// bounds inclusive.
func (d *Dataset) ByConcentrationRange(ctx context.Context, strategy dispatch.Strategy, min, max float64) ([]Reading, error) {
	return d.db.Scan(ctx, strategy, func(r Reading) bool {
		return r.Concentration >= min && r.Concentration <= max
	})
}

// WithinBounds returns readings inside the geographic bounding box, bounds
// inclusive.
func (d *Dataset) WithinBounds(ctx context.Context, strategy dispatch.Strategy, minLat, maxLat, minLon, maxLon float64) ([]Reading, error) {
	return d.db.Scan(ctx, strategy, func(r Reading) bool {
		return r.Latitude >= minLat && r.Latitude <= maxLat &&
			r.Longitude >= minLon && r.Longitude <= maxLon
	})
}

// ByCategory returns readings with the given AQI category.
func (d *Dataset) ByCategory(ctx context.Context, strategy dispatch.Strategy, category int) ([]Reading, error) {
	return d.db.Scan(ctx, strategy, func(r Reading) bool {
		return r.Category == category
	})
}

// BySiteName returns readings whose site name equals name exactly.
func (d *Dataset) BySiteName(ctx context.Context, strategy dispatch.Strategy, name string) ([]Reading, error) {
	return d.db.Scan(ctx, strategy, func(r Reading) bool {
		return r.SiteName == name
	})
}

// MeanConcentration returns the mean concentration across readings of one
// pollutant. Zero matching readings yield 0.
func (d *Dataset) MeanConcentration(ctx context.Context, strategy dispatch.Strategy, pollutant string) (float64, error) {
	return d.db.Mean(ctx, strategy,
		func(r Reading) float64 { return r.Concentration },
		func(r Reading) bool { return r.Pollutant == pollutant },
	)
}

// CountByPollutant counts readings grouped by pollutant type.
func (d *Dataset) CountByPollutant(ctx context.Context, strategy dispatch.Strategy) (map[string]int, error) {
	return d.db.CountBy(ctx, strategy, func(r Reading) string { return r.Pollutant })
}

// CountByCategory counts readings grouped by AQI category.
func (d *Dataset) CountByCategory(ctx context.Context, strategy dispatch.Strategy) (map[int]int, error) {
	byKey, err := d.db.CountBy(ctx, strategy, func(r Reading) string { return strconv.Itoa(r.Category) })
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int, len(byKey))
	for key, n := range byKey {
		category, _ := strconv.Atoi(key) // key was produced by Itoa
		counts[category] = n
	}
	return counts, nil
}

// CountByAgency counts readings grouped by reporting agency.
func (d *Dataset) CountByAgency(ctx context.Context, strategy dispatch.Strategy) (map[string]int, error) {
	return d.db.CountBy(ctx, strategy, func(r Reading) string { return r.AgencyName })
}
