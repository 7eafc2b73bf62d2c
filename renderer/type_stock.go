package renderer

import (
	"fmt"

	"github.com/Rhymond/go-money"

	"github.com/hahuaz/eot"
)

// StockReport is the render-ready view of one analyzed stock: every value is
// already formatted, so the templates only lay things out.
type StockReport struct {
	Symbol   string
	Region   string
	Price    string // live price, formatted in the region's currency
	Notes    []string
	Headers  []string // date keys, newest first
	Base     []MetricRow
	Derived  []MetricRow
	Growth   []GrowthRow
	Selected GrowthRow
}

// MetricRow is one formatted table row; Cells align with the report headers.
type MetricRow struct {
	Name  string
	Cells []string
}

// GrowthRow is one metric's formatted growth figures.
type GrowthRow struct {
	Name   string
	Total  string
	Yearly string
	TTM    string
}

// regionCurrency maps a market to the currency its prices quote in.
func regionCurrency(r eot.Region) string {
	if r == eot.RegionUS {
		return money.USD
	}
	return money.TRY
}

// formatMoney renders a price in the region's currency with its symbol.
func formatMoney(v float64, currency string) string {
	cur := money.GetCurrency(currency)
	return money.New(int64(v*float64(pow10(cur.Fraction))), currency).Display()
}

func pow10(n int) int {
	out := 1
	for range n {
		out *= 10
	}
	return out
}

// NewStockReport flattens an analyzed metric set into a report. The analyzer
// must have run already; growth fields still unset render as empty cells.
func NewStockReport(a *eot.Analyzer, info eot.DynamicInfo) *StockReport {
	r := &StockReport{
		Symbol:  a.Config.Symbol,
		Region:  string(a.Config.Region),
		Price:   formatMoney(info.Price, regionCurrency(a.Config.Region)),
		Notes:   info.Notes,
		Headers: a.Axis.Keys(),
	}
	for _, m := range a.Metrics.BaseMetrics() {
		row := MetricRow{Name: m.Name}
		for _, key := range r.Headers {
			if v, ok := m.Value(key); ok {
				row.Cells = append(row.Cells, trimFloat(v))
			} else {
				row.Cells = append(row.Cells, "")
			}
		}
		r.Base = append(r.Base, row)
	}
	for _, d := range a.Metrics.DerivedMetrics() {
		if d.Name == eot.DerivedSelected {
			r.Selected = GrowthRow{
				Name:   d.Name,
				Total:  d.Growth.Total.String(),
				Yearly: d.Growth.Yearly.String(),
				TTM:    d.Growth.TTM.String(),
			}
			continue
		}
		row := MetricRow{Name: d.Name}
		for _, key := range r.Headers {
			row.Cells = append(row.Cells, d.Rate(key).String())
		}
		r.Derived = append(r.Derived, row)
		if d.Name == eot.DerivedYield {
			r.Growth = append(r.Growth, GrowthRow{
				Name:   d.Name,
				Total:  d.Growth.Total.String(),
				Yearly: d.Growth.Yearly.String(),
				TTM:    d.Growth.TTM.String(),
			})
		}
	}
	for _, name := range []string{eot.MetricEquity, eot.MetricTotalAssets, eot.MetricRevenue, eot.MetricOperating, eot.MetricNetIncome} {
		if m := a.Metrics.Base(name); m != nil {
			r.Growth = append(r.Growth, GrowthRow{
				Name:   m.Name,
				Total:  m.Growth.Total.String(),
				Yearly: m.Growth.Yearly.String(),
				TTM:    m.Growth.TTM.String(),
			})
		}
	}
	return r
}

// trimFloat formats a table cell without trailing zeros.
func trimFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
