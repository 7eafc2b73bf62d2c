package eot

import (
	"fmt"
	"math"
	"time"

	"github.com/hahuaz/eot/date"
)

// DefaultBaseline is the observation start date of the shipped basket data.
var DefaultBaseline = date.New(2024, time.December, 30)

// Names of the cumulative-return series, in rendering order.
const (
	SeriesUSD     = "USD/TRY"
	SeriesEUR     = "EUR/TRY"
	SeriesMixed   = "Mixed currency"
	SeriesFundNet = "Money fund (net)"
	SeriesGold    = "Gold"
)

// PriceBasket holds the daily closing prices the returns calculator tracks:
// the two foreign currencies, a domestic money-market fund and gold. Series
// come from the daily price files and may extend before the baseline.
type PriceBasket struct {
	USD  *date.History[float64]
	EUR  *date.History[float64]
	Fund *date.History[float64]
	Gold *date.History[float64]
}

// CumulativeReturns is the calculator's output: one cumulative return per
// series per observation date, all anchored to the same baseline. Dates are
// ascending; every series has exactly one value per date.
type CumulativeReturns struct {
	Baseline date.Date
	Dates    []date.Date
	USD      []Rate
	EUR      []Rate
	Mixed    []Rate
	FundNet  []Rate
	Gold     []Rate
}

// ComputeReturns derives the cumulative return of every basket series for
// each date the USD series observed after the baseline. The USD series is
// the reference: every other series must carry a value on its post-baseline
// dates, and on the baseline itself, or the computation fails: a gap would
// silently shift the anchor of gain figures.
//
// The mixed series blends the two currencies by the geometric mean of their
// cumulative factors, which equals compounding the per-step geometric means.
// The fund series is reported net of the region's withholding tax.
func ComputeReturns(basket PriceBasket, baseline date.Date, taxes TaxRates) (*CumulativeReturns, error) {
	usd0, err := anchorPrice(basket.USD, SeriesUSD, baseline)
	if err != nil {
		return nil, err
	}
	eur0, err := anchorPrice(basket.EUR, SeriesEUR, baseline)
	if err != nil {
		return nil, err
	}
	fund0, err := anchorPrice(basket.Fund, SeriesFundNet, baseline)
	if err != nil {
		return nil, err
	}
	gold0, err := anchorPrice(basket.Gold, SeriesGold, baseline)
	if err != nil {
		return nil, err
	}

	out := &CumulativeReturns{Baseline: baseline}
	for day, usd := range basket.USD.Values() {
		if !day.After(baseline) {
			continue
		}
		eur, err := alignedPrice(basket.EUR, SeriesEUR, day)
		if err != nil {
			return nil, err
		}
		fund, err := alignedPrice(basket.Fund, SeriesFundNet, day)
		if err != nil {
			return nil, err
		}
		gold, err := alignedPrice(basket.Gold, SeriesGold, day)
		if err != nil {
			return nil, err
		}
		usdFactor := usd / usd0
		eurFactor := eur / eur0
		out.Dates = append(out.Dates, day)
		out.USD = append(out.USD, Num(usdFactor-1))
		out.EUR = append(out.EUR, Num(eurFactor-1))
		out.Mixed = append(out.Mixed, Num(math.Sqrt(usdFactor*eurFactor)-1))
		out.FundNet = append(out.FundNet, Num((fund/fund0-1)*(1-taxes.Withholding)))
		out.Gold = append(out.Gold, Num(gold/gold0-1))
	}
	return out, nil
}

func anchorPrice(h *date.History[float64], name string, baseline date.Date) (float64, error) {
	if h == nil || h.Len() == 0 {
		return 0, fmt.Errorf("%w: %s price series", ErrMissingMetric, name)
	}
	v, ok := h.Get(baseline)
	if !ok {
		return 0, fmt.Errorf("%w: %s at baseline %s", ErrMissingDateData, name, baseline)
	}
	return v, nil
}

func alignedPrice(h *date.History[float64], name string, day date.Date) (float64, error) {
	v, ok := h.Get(day)
	if !ok {
		return 0, fmt.Errorf("%w: %s at %s", ErrMissingDateData, name, day)
	}
	return v, nil
}
