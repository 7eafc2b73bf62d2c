package eot

import (
	"fmt"
	"time"

	"github.com/hahuaz/eot/date"
)

// CurrentKey is the synthetic column holding the live ("as of now") value of
// every metric, ahead of the most recent reported period.
const CurrentKey = "current"

// Axis is the reporting date grid shared by every stock in a region.
//
// The grid is hand-maintained: the interim quarter-ends of the running fiscal
// year come first (newest first), followed by the finished fiscal year-ends
// (newest first). The synthetic "current" column always precedes them. Every
// annualization and TTM calculation resolves its anchor dates through the
// named accessors below, never by position.
type Axis struct {
	interim  []date.Date // reported quarter-ends of the running fiscal year, newest first
	yearEnds []date.Date // finished fiscal year-ends, newest first

	keys  []string             // descending key list, "current" first
	dates map[string]date.Date // key -> parsed date, excludes "current"
}

// NewAxis builds an axis from the reported interim quarter-ends and the
// finished fiscal year-ends, both newest first. At least one interim period
// and two finished years are required: TTM interpolation needs the last two
// finished years, and growth anchors need a last reported period.
func NewAxis(interim, yearEnds []date.Date) (*Axis, error) {
	if len(interim) == 0 {
		return nil, fmt.Errorf("axis: at least one reported interim period is required")
	}
	if len(yearEnds) < 2 {
		return nil, fmt.Errorf("axis: at least two finished fiscal years are required, got %d", len(yearEnds))
	}
	a := &Axis{
		interim:  interim,
		yearEnds: yearEnds,
		dates:    make(map[string]date.Date, len(interim)+len(yearEnds)),
	}
	a.keys = append(a.keys, CurrentKey)
	var prev date.Date
	for _, d := range append(append([]date.Date{}, interim...), yearEnds...) {
		if !prev.IsZero() && !d.Before(prev) {
			return nil, fmt.Errorf("axis: dates must be strictly descending, %s is not before %s", d, prev)
		}
		a.keys = append(a.keys, d.Key())
		a.dates[d.Key()] = d
		prev = d
	}
	return a, nil
}

// DefaultAxis returns the grid currently shipped with the data files.
// It must be extended by hand as new periods are reported.
func DefaultAxis() *Axis {
	a, err := NewAxis(
		[]date.Date{
			date.New(2025, time.September, 30),
			date.New(2025, time.June, 30),
			date.New(2025, time.March, 30),
		},
		[]date.Date{
			date.New(2024, time.December, 30),
			date.New(2023, time.December, 30),
			date.New(2022, time.December, 30),
			date.New(2021, time.December, 30),
			date.New(2020, time.December, 30),
			date.New(2019, time.December, 30),
		},
	)
	if err != nil {
		panic(err.Error())
	}
	return a
}

// Keys returns the full descending key list, "current" first, then the last
// reported quarter-end, then every older period.
func (a *Axis) Keys() []string { return a.keys }

// LastReported returns the most recent reported quarter-end.
func (a *Axis) LastReported() date.Date { return a.interim[0] }

// LastReportedKey returns the column key of the most recent reported period.
func (a *Axis) LastReportedKey() string { return a.interim[0].Key() }

// LastFinishedYear returns the most recent finished fiscal year-end.
func (a *Axis) LastFinishedYear() date.Date { return a.yearEnds[0] }

// PreviousFinishedYear returns the fiscal year-end before the last finished one.
func (a *Axis) PreviousFinishedYear() date.Date { return a.yearEnds[1] }

// Quarter returns the fiscal quarter of the most recent finished period.
func (a *Axis) Quarter() int { return a.LastReported().Quarter() }

// Date resolves a column key to its calendar date. The "current" key has no
// calendar date and reports false.
func (a *Axis) Date(key string) (date.Date, bool) {
	d, ok := a.dates[key]
	return d, ok
}

// YearsPassed returns the elapsed years from the given column key to the last
// reported period, as a fraction of whole months. A key after the anchor is a
// data-integrity violation and returns an error.
func (a *Axis) YearsPassed(key string) (float64, error) {
	from, ok := a.dates[key]
	if !ok {
		return 0, fmt.Errorf("years passed: unknown date key %q", key)
	}
	months := from.MonthsTo(a.LastReported())
	if months < 0 {
		return 0, fmt.Errorf("years passed: date %s is after the last reported period %s", from, a.LastReported())
	}
	return float64(months) / 12, nil
}

// AvailableDates returns the subset of the axis for which the named base
// metric has a non-null, non-zero value, in chronological order (oldest
// first). It accommodates securities listed more recently than the full grid.
// A metric with no available date at all is a configuration error.
func (a *Axis) AvailableDates(set *MetricSet, name string) ([]string, error) {
	metric := set.Base(name)
	if metric == nil {
		return nil, fmt.Errorf("available dates: %w: %s", ErrMissingMetric, name)
	}
	var available []string
	for i := len(a.keys) - 1; i >= 0; i-- {
		key := a.keys[i]
		if v, ok := metric.Value(key); ok && v != 0 {
			available = append(available, key)
		}
	}
	if len(available) == 0 {
		return nil, fmt.Errorf("available dates: metric %s has no value on any axis date", name)
	}
	return available, nil
}
