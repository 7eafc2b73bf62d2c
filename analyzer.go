package eot

import (
	"fmt"
	"math"
)

// Analyzer runs the fixed derivation pipeline for one stock: population of
// the current column, the yield series, the valuation ratios, nominal growth,
// inflation adjustment and the selected-growth summary. Steps run in a fixed
// order because later ones read earlier outputs.
//
// An Analyzer is built fresh per request and never shared; the only shared
// inputs, the axis and the inflation series, are read-only.
type Analyzer struct {
	Axis      *Axis
	Config    StockConfig
	Inflation *InflationSeries
	Taxes     TaxRates
	Metrics   *MetricSet
}

// growthMetrics are the base metrics that receive growth figures in step 6.
var growthMetrics = []string{
	MetricEquity,
	MetricTotalAssets,
	MetricRevenue,
	MetricOperating,
	MetricNetIncome,
}

// NewAnalyzer wires a pipeline run for one stock. The region's tax policy is
// resolved here so an unsupported region fails before any derivation starts.
func NewAnalyzer(axis *Axis, cfg StockConfig, inflation *InflationSeries, set *MetricSet) (*Analyzer, error) {
	taxes, err := TaxPolicy(cfg.Region)
	if err != nil {
		return nil, err
	}
	return &Analyzer{
		Axis:      axis,
		Config:    cfg,
		Inflation: inflation,
		Taxes:     taxes,
		Metrics:   set,
	}, nil
}

// Run executes the pipeline against the live quote. On return the metric set
// holds every derived metric and the growth fields on the base metrics.
func (a *Analyzer) Run(livePrice float64) error {
	if err := a.Metrics.PopulateCurrent(a.Axis, livePrice); err != nil {
		return err
	}
	if err := a.deriveYield(); err != nil {
		return fmt.Errorf("yield: %w", err)
	}
	// All remaining steps share the Equity availability range: balance-sheet
	// and income figures appear together on a statement, so Equity marks the
	// dates the security has reported at all.
	dates, err := a.Axis.AvailableDates(a.Metrics, MetricEquity)
	if err != nil {
		return err
	}
	if err := a.deriveNetDebtRatio(dates); err != nil {
		return fmt.Errorf("net debt ratio: %w", err)
	}
	if err := a.deriveEnterpriseValue(dates); err != nil {
		return fmt.Errorf("enterprise value: %w", err)
	}
	if err := a.deriveValuationRatios(dates); err != nil {
		return fmt.Errorf("valuation ratios: %w", err)
	}
	if err := a.deriveMarketToBook(dates); err != nil {
		return fmt.Errorf("market to book: %w", err)
	}
	if err := a.deriveGrowth(dates); err != nil {
		return fmt.Errorf("growth: %w", err)
	}
	if err := a.adjustForInflation(dates); err != nil {
		return fmt.Errorf("inflation adjustment: %w", err)
	}
	if err := a.deriveSelectedGrowth(dates); err != nil {
		return fmt.Errorf("selected growth: %w", err)
	}
	return nil
}

// marketValue converts a share price into a market value on the same scale
// as the trimmed statement figures.
func (a *Analyzer) marketValue(price float64) float64 {
	return price * a.Config.OutstandingShares / a.Config.TrimDigit
}

// netDebt is short plus long term liabilities minus cash, each defaulting to
// zero when the period exists but the line was not reported.
func (a *Analyzer) netDebt(key string) float64 {
	return a.Metrics.valueOrZero(MetricShortTerm, key) +
		a.Metrics.valueOrZero(MetricLongTerm, key) -
		a.Metrics.valueOrZero(MetricCash, key)
}

// deriveYield builds the total-return series over the price availability
// range: inflation-adjusted price appreciation plus net dividend, per period.
// It then attaches total, yearly and TTM growth to the series.
func (a *Analyzer) deriveYield() error {
	price, err := a.Metrics.RequireBase(MetricPrice)
	if err != nil {
		return err
	}
	dates, err := a.Axis.AvailableDates(a.Metrics, MetricPrice)
	if err != nil {
		return err
	}
	dividend := a.Metrics.Base(MetricDividend)

	y := NewDerivedMetric(DerivedYield)
	// The oldest available date is the baseline: it has no prior price to
	// compute a delta from, so the series starts one step after it.
	for i := 1; i < len(dates); i++ {
		key, prev := dates[i], dates[i-1]
		p, err := price.Require(key)
		if err != nil {
			return err
		}
		pp, err := price.Require(prev)
		if err != nil {
			return err
		}
		priceYield := (p - pp) / pp
		inflation, err := a.Inflation.PeriodRate(key)
		if err != nil {
			return err
		}
		var netDividend float64
		if dividend != nil {
			netDividend = dividend.ValueOrZero(key) * (1 - a.Taxes.Dividend)
		}
		y.Set(key, Num(realRate(priceYield, inflation)+netDividend))
	}

	total := 1.0
	for i := 1; i < len(dates); i++ {
		v, _ := y.Rate(dates[i]).Value()
		total *= 1 + v
	}
	total -= 1
	y.Growth.Total = Num(total)

	years, err := a.Axis.YearsPassed(dates[0])
	if err != nil {
		return err
	}
	y.Growth.Yearly = Num(annualize(round(total), years))

	ttm, err := a.yieldTTM(y)
	if err != nil {
		return err
	}
	y.Growth.TTM = ttm

	a.Metrics.AddDerived(y)
	return nil
}

// yieldTTM compounds the running year's yields with a pro-rated share of the
// last finished fiscal year's yield. After a Q4 report the running year is
// complete and the interpolation is meaningless, so the computation is
// refused rather than silently wrong.
func (a *Analyzer) yieldTTM(y *DerivedMetric) (Rate, error) {
	quarter := a.Axis.Quarter()
	if quarter == 4 {
		return Rate{}, fmt.Errorf("%w: trailing twelve months after a Q4 report", ErrUnimplemented)
	}
	ttm := 1.0
	for _, key := range a.Axis.Keys()[:quarter+1] {
		cell, err := y.Require(key)
		if err != nil {
			return Rate{}, err
		}
		v, _ := cell.Value()
		ttm *= 1 + v
	}
	lfyCell, err := y.Require(a.Axis.LastFinishedYear().Key())
	if err != nil {
		return Rate{}, err
	}
	lfy, _ := lfyCell.Value()
	remainder := lfy / 4 * float64(4-quarter)
	return Num(ttm*(1+remainder) - 1), nil
}

// deriveNetDebtRatio emits net debt over operating income per date. Operating
// income reported as non-positive marks the ratio undefined; not reported at
// all on a statement date is a data error.
func (a *Analyzer) deriveNetDebtRatio(dates []string) error {
	operating, err := a.Metrics.RequireBase(MetricOperating)
	if err != nil {
		return err
	}
	d := NewDerivedMetric(DerivedNetDebt)
	for _, key := range dates {
		oi, err := operating.Require(key)
		if err != nil {
			return err
		}
		if oi <= 0 {
			d.Set(key, Undefined())
			continue
		}
		d.Set(key, Num(a.netDebt(key)/oi))
	}
	a.Metrics.AddDerived(d)
	return nil
}

// deriveEnterpriseValue emits market value plus net debt per date. Dates
// without a price are skipped entirely: EV is undefined before the security
// was listed, and downstream ratios skip those dates too.
func (a *Analyzer) deriveEnterpriseValue(dates []string) error {
	price, err := a.Metrics.RequireBase(MetricPrice)
	if err != nil {
		return err
	}
	d := NewDerivedMetric(DerivedEV)
	for _, key := range dates {
		p, ok := price.Value(key)
		if !ok {
			continue
		}
		d.Set(key, Num(a.marketValue(p)+a.netDebt(key)))
	}
	a.Metrics.AddDerived(d)
	return nil
}

// deriveValuationRatios emits EV over operating income and EV over net
// income. A date skipped by the EV step stays skipped; a non-positive
// denominator, or an EV already marked undefined, yields an undefined cell.
func (a *Analyzer) deriveValuationRatios(dates []string) error {
	ev := a.Metrics.Derived(DerivedEV)
	if ev == nil {
		return fmt.Errorf("%w: %s", ErrMissingMetric, DerivedEV)
	}
	for _, spec := range []struct{ name, denom string }{
		{DerivedEVOI, MetricOperating},
		{DerivedEVNI, MetricNetIncome},
	} {
		base, err := a.Metrics.RequireBase(spec.denom)
		if err != nil {
			return err
		}
		d := NewDerivedMetric(spec.name)
		for _, key := range dates {
			cell := ev.Rate(key)
			if !cell.IsSet() {
				continue
			}
			if cell.IsUndefined() {
				d.Set(key, Undefined())
				continue
			}
			denom, err := base.Require(key)
			if err != nil {
				return err
			}
			if denom <= 0 {
				d.Set(key, Undefined())
				continue
			}
			v, _ := cell.Value()
			d.Set(key, Num(v/denom))
		}
		a.Metrics.AddDerived(d)
	}
	return nil
}

// deriveMarketToBook emits market value over equity per date. A missing
// price skips the date; missing equity on a statement date is a data error.
func (a *Analyzer) deriveMarketToBook(dates []string) error {
	price, err := a.Metrics.RequireBase(MetricPrice)
	if err != nil {
		return err
	}
	equity, err := a.Metrics.RequireBase(MetricEquity)
	if err != nil {
		return err
	}
	d := NewDerivedMetric(DerivedMVBV)
	for _, key := range dates {
		p, ok := price.Value(key)
		if !ok {
			continue
		}
		book, err := equity.Require(key)
		if err != nil {
			return err
		}
		d.Set(key, Num(a.marketValue(p)/book))
	}
	a.Metrics.AddDerived(d)
	return nil
}

// annualize converts a total growth over a span of years into a yearly rate.
func annualize(total, years float64) float64 {
	return math.Pow(1+total, 1/years) - 1
}
