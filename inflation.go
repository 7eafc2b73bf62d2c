package eot

import (
	"fmt"
	"time"

	"github.com/hahuaz/eot/date"
)

// Inflation is one per-date record of a regional inflation series.
// Rates are fractions, not percentages (0.05 is five percent).
type Inflation struct {
	Date       date.Date
	MoM        float64 // month over month
	QoQ        float64 // quarter over quarter
	YoY        float64 // year over year
	YTD        float64 // year to date
	Cumulative float64 // since series start
}

// InflationSeries holds one region's inflation records, addressed by exact
// date key. Lookups fail loudly: a required date missing from the series is
// a data error, never silently zero.
type InflationSeries struct {
	region Region
	byKey  map[string]Inflation
}

// NewInflationSeries indexes the given records for the region.
func NewInflationSeries(region Region, records []Inflation) *InflationSeries {
	s := &InflationSeries{region: region, byKey: make(map[string]Inflation, len(records))}
	for _, r := range records {
		s.byKey[r.Date.Key()] = r
	}
	return s
}

// Region returns the region this series covers.
func (s *InflationSeries) Region() Region { return s.region }

// At returns the record for a date key, or a MissingDateData error.
func (s *InflationSeries) At(key string) (Inflation, error) {
	r, ok := s.byKey[key]
	if !ok {
		return Inflation{}, fmt.Errorf("%w: %s inflation at %s", ErrMissingDateData, s.region, key)
	}
	return r, nil
}

// PeriodRate returns the inflation figure matching a reporting date's span:
// zero for the synthetic current column (no period has elapsed), QoQ for an
// interim quarter-end, YoY for a fiscal year-end.
func (s *InflationSeries) PeriodRate(key string) (float64, error) {
	if key == CurrentKey {
		return 0, nil
	}
	r, err := s.At(key)
	if err != nil {
		return 0, err
	}
	if r.Date.Month() != time.December {
		return r.QoQ, nil
	}
	return r.YoY, nil
}

// realRate deflates a nominal rate by the inflation over the same period.
func realRate(nominal, inflation float64) float64 {
	return (nominal - inflation) / (1 + inflation)
}
