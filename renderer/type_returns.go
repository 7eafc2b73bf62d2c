package renderer

import (
	"github.com/hahuaz/eot"
)

// ReturnsReport is the render-ready view of the cumulative returns basket.
type ReturnsReport struct {
	Baseline string
	Series   []string // column names, fixed order
	Rows     []ReturnsRow
	Fund     string // real net TTM yield of the money fund, if computed
}

// ReturnsRow is one observation date's formatted returns; Cells align with Series.
type ReturnsRow struct {
	Date  string
	Cells []string
}

// NewReturnsReport flattens the calculator output for rendering.
func NewReturnsReport(cr *eot.CumulativeReturns, fundYield eot.Rate) *ReturnsReport {
	r := &ReturnsReport{
		Baseline: cr.Baseline.String(),
		Series:   []string{eot.SeriesUSD, eot.SeriesEUR, eot.SeriesMixed, eot.SeriesFundNet, eot.SeriesGold},
		Fund:     fundYield.String(),
	}
	for i, day := range cr.Dates {
		r.Rows = append(r.Rows, ReturnsRow{
			Date: day.String(),
			Cells: []string{
				cr.USD[i].String(),
				cr.EUR[i].String(),
				cr.Mixed[i].String(),
				cr.FundNet[i].String(),
				cr.Gold[i].String(),
			},
		})
	}
	return r
}
