package eot

import "fmt"

// deriveGrowth attaches nominal total and TTM growth to each growth-bearing
// base metric. Figures stay nominal here; adjustForInflation rewrites them.
func (a *Analyzer) deriveGrowth(dates []string) error {
	quarter := a.Axis.Quarter()
	if quarter == 4 {
		return fmt.Errorf("%w: trailing twelve months after a Q4 report", ErrUnimplemented)
	}
	oldest := dates[0]
	last := a.Axis.LastReportedKey()
	lfy := a.Axis.LastFinishedYear().Key()
	pfy := a.Axis.PreviousFinishedYear().Key()

	for _, name := range growthMetrics {
		m, err := a.Metrics.RequireBase(name)
		if err != nil {
			return err
		}
		first, err := m.Require(oldest)
		if err != nil {
			return err
		}
		lastValue, err := m.Require(last)
		if err != nil {
			return err
		}
		if first > 0 && lastValue > 0 {
			m.Growth.Total = Num((lastValue - first) / first)
		} else {
			m.Growth.Total = Undefined()
		}

		// The TTM baseline is interpolated between the last two finished
		// fiscal years, assuming the year accrues in even quarters.
		lfyValue, err := m.Require(lfy)
		if err != nil {
			return err
		}
		pfyValue, err := m.Require(pfy)
		if err != nil {
			return err
		}
		ttmStart := pfyValue + (lfyValue-pfyValue)/4*float64(quarter)
		if ttmStart > 0 && lastValue > 0 {
			m.Growth.TTM = Num((lastValue - ttmStart) / ttmStart)
		} else {
			m.Growth.TTM = Undefined()
		}
	}
	return nil
}

// accumulatedInflation compounds inflation across the reporting range. The
// oldest date is the growth baseline and contributes nothing; the last
// reported date contributes its year-to-date figure, which already covers
// the running year's older quarters, so those are skipped to avoid double
// counting; every other date contributes its year-over-year figure.
func (a *Analyzer) accumulatedInflation(dates []string) (float64, error) {
	last := a.Axis.LastReportedKey()
	lastYear := a.Axis.LastReported().Year()
	acc := 0.0
	for i, key := range dates {
		if i == 0 || key == CurrentKey {
			continue
		}
		rec, err := a.Inflation.At(key)
		if err != nil {
			return 0, err
		}
		switch {
		case key == last:
			acc = (1+acc)*(1+rec.YTD) - 1
		case rec.Date.Year() == lastYear:
			continue
		default:
			acc = (1+acc)*(1+rec.YoY) - 1
		}
	}
	return acc, nil
}

// adjustForInflation rewrites the nominal growth figures as real ones. Total
// growth is deflated by the inflation accumulated over the whole range and
// yearly growth re-derived from it; TTM growth spans exactly one year and is
// deflated by the anchor date's year-over-year figure alone.
func (a *Analyzer) adjustForInflation(dates []string) error {
	acc, err := a.accumulatedInflation(dates)
	if err != nil {
		return err
	}
	years, err := a.Axis.YearsPassed(dates[0])
	if err != nil {
		return err
	}
	anchor, err := a.Inflation.At(a.Axis.LastReportedKey())
	if err != nil {
		return err
	}
	for _, name := range growthMetrics {
		m := a.Metrics.Base(name)
		if total, ok := m.Growth.Total.Value(); ok {
			real := round(realRate(total, acc))
			m.Growth.Total = Num(real)
			m.Growth.Yearly = Num(annualize(real, years))
		} else {
			m.Growth.Yearly = Undefined()
		}
		if ttm, ok := m.Growth.TTM.Value(); ok {
			m.Growth.TTM = Num(realRate(ttm, anchor.YoY))
		}
	}
	return nil
}

// deriveSelectedGrowth averages the real growth of the configured metric
// basket into the summary metric. The basket is chosen per stock to contain
// metrics with defined growth; an undefined figure in it is a configuration
// error, not something to average around.
func (a *Analyzer) deriveSelectedGrowth(dates []string) error {
	if len(a.Config.GrowthParams) == 0 {
		return fmt.Errorf("%w: no growth metrics selected for %s", ErrMissingMetric, a.Config.Symbol)
	}
	var sumTotal, sumTTM float64
	for _, name := range a.Config.GrowthParams {
		m, err := a.Metrics.RequireBase(name)
		if err != nil {
			return err
		}
		total, ok := m.Growth.Total.Value()
		if !ok {
			return fmt.Errorf("selected metric %s has undefined total growth", name)
		}
		ttm, ok := m.Growth.TTM.Value()
		if !ok {
			return fmt.Errorf("selected metric %s has undefined TTM growth", name)
		}
		sumTotal += total
		sumTTM += ttm
	}
	n := float64(len(a.Config.GrowthParams))
	years, err := a.Axis.YearsPassed(dates[0])
	if err != nil {
		return err
	}
	avgTotal := round(sumTotal / n)
	d := NewDerivedMetric(DerivedSelected)
	d.Growth.Total = Num(avgTotal)
	d.Growth.TTM = Num(sumTTM / n)
	d.Growth.Yearly = Num(annualize(avgTotal, years))
	a.Metrics.AddDerived(d)
	return nil
}
