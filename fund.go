package eot

// TTM unit prices of the tracked money fund: the price one year before the
// anchor date and the live price.
// TODO: scrape these from the fund provider in UpdateDailySeries instead of
// pinning them here.
const (
	fundPreviousTTMPrice = 2.946158
	fundLiveTTMPrice     = 5.008617
)

// TrackedFundYield derives the real TTM yield of the shipped money fund.
func TrackedFundYield(inflation *InflationSeries, axis *Axis) (Rate, error) {
	taxes, err := TaxPolicy(inflation.Region())
	if err != nil {
		return Rate{}, err
	}
	return FundYield(fundPreviousTTMPrice, fundLiveTTMPrice, taxes, inflation, axis)
}

// FundYield derives the real, net-of-withholding trailing-twelve-month yield
// of a money-market fund from its unit price a year before the anchor date
// and its live unit price. The nominal yield is taxed at the region's
// withholding rate, then deflated by the anchor date's year-over-year
// inflation.
func FundYield(previousPrice, livePrice float64, taxes TaxRates, inflation *InflationSeries, axis *Axis) (Rate, error) {
	rec, err := inflation.At(axis.LastReportedKey())
	if err != nil {
		return Rate{}, err
	}
	nominal := (livePrice - previousPrice) / previousPrice
	net := nominal * (1 - taxes.Withholding)
	return Num(realRate(net, rec.YoY)), nil
}
