package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/hahuaz/eot"
	"github.com/hahuaz/eot/date"
)

func analyzedStock(t *testing.T) *eot.Analyzer {
	t.Helper()
	axis, err := eot.NewAxis(
		[]date.Date{
			date.New(2025, time.September, 30),
			date.New(2025, time.June, 30),
			date.New(2025, time.March, 30),
		},
		[]date.Date{date.New(2024, time.December, 30), date.New(2023, time.December, 30)},
	)
	if err != nil {
		t.Fatal(err)
	}
	set := eot.NewMetricSet()
	add := func(name string, values ...float64) {
		m := eot.NewBaseMetric(name)
		keys := []string{"2025/9/30", "2025/6/30", "2025/3/30", "2024/12/30", "2023/12/30"}
		for i, v := range values {
			m.Set(keys[i], v)
		}
		set.AddBase(m)
	}
	add(eot.MetricCash, 3, 3, 3, 3, 3)
	add(eot.MetricShortTerm, 1, 1, 1, 1, 1)
	add(eot.MetricLongTerm, 1, 1, 1, 1, 1)
	add(eot.MetricEquity, 555, 520, 480, 450, 400)
	add(eot.MetricTotalAssets, 1100, 1000, 950, 900, 800)
	add(eot.MetricRevenue, 240, 150, 70, 260, 200)
	add(eot.MetricOperating, 128, 70, 30, 90, 60)
	add(eot.MetricNetIncome, 44, 28, 12, 35, 25)
	add(eot.MetricPrice, 90, 80, 70, 60, 40)
	dividend := eot.NewBaseMetric(eot.MetricDividend)
	dividend.Set("2024/12/30", 1)
	set.AddBase(dividend)

	inflation := eot.NewInflationSeries(eot.RegionTR, []eot.Inflation{
		{Date: date.New(2025, time.September, 30), QoQ: 0.05, YoY: 0.30, YTD: 0.20},
		{Date: date.New(2025, time.June, 30), QoQ: 0.06, YoY: 0.32, YTD: 0.15},
		{Date: date.New(2025, time.March, 30), QoQ: 0.07, YoY: 0.35, YTD: 0.07},
		{Date: date.New(2024, time.December, 30), QoQ: 0.10, YoY: 0.45, YTD: 0.45},
		{Date: date.New(2023, time.December, 30), QoQ: 0.11, YoY: 0.60, YTD: 0.60},
	})
	cfg := eot.StockConfig{
		Symbol:            "ACME",
		Region:            eot.RegionTR,
		OutstandingShares: 2,
		TrimDigit:         1,
		GrowthParams:      []string{eot.MetricRevenue, eot.MetricNetIncome},
	}
	a, err := eot.NewAnalyzer(axis, cfg, inflation, set)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Run(100); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return a
}

func TestRenderStock(t *testing.T) {
	a := analyzedStock(t)
	got := RenderStock(NewStockReport(a, eot.DynamicInfo{Price: 100, Notes: []string{"thin order book"}}))

	if strings.Contains(got, "error") {
		t.Fatalf("render failed:\n%s", got)
	}
	for _, want := range []string{
		"# ACME (tr)",
		"thin order book",
		"| Equity |",
		"| Enterprise value |",
		"| Selected growth",
		"current",
		"2025/9/30",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered stock missing %q:\n%s", want, got)
		}
	}
	// Live price is formatted in the region's currency.
	if !strings.Contains(got, "100.00") {
		t.Errorf("rendered stock missing formatted live price:\n%s", got)
	}
}

func TestRenderReturns(t *testing.T) {
	taxes, err := eot.TaxPolicy(eot.RegionTR)
	if err != nil {
		t.Fatal(err)
	}
	series := func(values ...float64) *date.History[float64] {
		days := []date.Date{
			date.New(2024, time.December, 30),
			date.New(2025, time.January, 2),
		}
		h := &date.History[float64]{}
		for i, v := range values {
			h.Append(days[i], v)
		}
		return h
	}
	basket := eot.PriceBasket{
		USD:  series(35, 35.7),
		EUR:  series(36, 36.9),
		Fund: series(2, 2.05),
		Gold: series(3000, 3090),
	}
	cr, err := eot.ComputeReturns(basket, date.New(2024, time.December, 30), taxes)
	if err != nil {
		t.Fatal(err)
	}
	got := RenderReturns(NewReturnsReport(cr, eot.Num(0.21349)))
	for _, want := range []string{
		"Cumulative returns since 2024-12-30",
		"| 2025-01-02 |",
		"0.02",
		"0.21349",
		eot.SeriesGold,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered returns missing %q:\n%s", want, got)
		}
	}
}
