package eot

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hahuaz/eot/date"
)

// testAxis mirrors the shipped grid as of a Q3 2025 report.
func testAxis(t *testing.T) *Axis {
	t.Helper()
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
		t.Fatalf("NewAxis() error = %v", err)
	}
	return a
}

func testInflation(t *testing.T) *InflationSeries {
	t.Helper()
	mk := func(y int, m time.Month, qoq, yoy, ytd float64) Inflation {
		return Inflation{Date: date.New(y, m, 30), QoQ: qoq, YoY: yoy, YTD: ytd}
	}
	return NewInflationSeries(RegionTR, []Inflation{
		mk(2025, time.September, 0.05, 0.30, 0.20),
		mk(2025, time.June, 0.06, 0.32, 0.15),
		mk(2025, time.March, 0.07, 0.35, 0.07),
		mk(2024, time.December, 0.10, 0.45, 0.45),
		mk(2023, time.December, 0.11, 0.60, 0.60),
		mk(2022, time.December, 0.12, 0.65, 0.65),
		mk(2021, time.December, 0.13, 0.35, 0.35),
		mk(2020, time.December, 0.02, 0.14, 0.14),
		mk(2019, time.December, 0.03, 0.12, 0.12),
	})
}

// testMetricSet builds the statement of a small stock listed since the end
// of 2021, with a dividend paid twice over the range.
func testMetricSet(t *testing.T) *MetricSet {
	t.Helper()
	set := NewMetricSet()
	add := func(name string, values map[string]float64) {
		m := NewBaseMetric(name)
		for key, v := range values {
			m.Set(key, v)
		}
		set.AddBase(m)
	}
	flat := func(v float64) map[string]float64 {
		out := make(map[string]float64)
		for _, key := range []string{"2025/9/30", "2025/6/30", "2025/3/30", "2024/12/30", "2023/12/30", "2022/12/30", "2021/12/30"} {
			out[key] = v
		}
		return out
	}
	add(MetricCash, flat(3))
	add(MetricShortTerm, flat(1))
	add(MetricLongTerm, flat(1))
	add(MetricEquity, map[string]float64{"2025/9/30": 555, "2025/6/30": 520, "2025/3/30": 480, "2024/12/30": 450, "2023/12/30": 400, "2022/12/30": 350, "2021/12/30": 300})
	add(MetricTotalAssets, map[string]float64{"2025/9/30": 1100, "2025/6/30": 1000, "2025/3/30": 950, "2024/12/30": 900, "2023/12/30": 800, "2022/12/30": 700, "2021/12/30": 600})
	add(MetricRevenue, map[string]float64{"2025/9/30": 240, "2025/6/30": 150, "2025/3/30": 70, "2024/12/30": 260, "2023/12/30": 200, "2022/12/30": 150, "2021/12/30": 100})
	add(MetricOperating, map[string]float64{"2025/9/30": 128, "2025/6/30": 70, "2025/3/30": 30, "2024/12/30": 90, "2023/12/30": 60, "2022/12/30": 40, "2021/12/30": 30})
	add(MetricNetIncome, map[string]float64{"2025/9/30": 44, "2025/6/30": 28, "2025/3/30": 12, "2024/12/30": 35, "2023/12/30": 25, "2022/12/30": 15, "2021/12/30": 10})
	add(MetricPrice, map[string]float64{"2025/9/30": 90, "2025/6/30": 80, "2025/3/30": 70, "2024/12/30": 60, "2023/12/30": 40, "2022/12/30": 20, "2021/12/30": 10})
	add(MetricDividend, map[string]float64{"2025/6/30": 2, "2024/12/30": 1})
	return set
}

func testAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	cfg := StockConfig{
		Symbol:            "TEST",
		Region:            RegionTR,
		OutstandingShares: 2,
		TrimDigit:         1,
		GrowthParams:      []string{MetricRevenue, MetricNetIncome},
	}
	a, err := NewAnalyzer(testAxis(t), cfg, testInflation(t), testMetricSet(t))
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}
	return a
}

func assertCell(t *testing.T, d *DerivedMetric, key string, want float64) {
	t.Helper()
	got, ok := d.Rate(key).Value()
	if !ok {
		t.Fatalf("%s[%s] = %q, want %v", d.Name, key, d.Rate(key), want)
	}
	if got != want {
		t.Errorf("%s[%s] = %v, want %v", d.Name, key, got, want)
	}
}

func assertRate(t *testing.T, label string, r Rate, want float64) {
	t.Helper()
	got, ok := r.Value()
	if !ok {
		t.Fatalf("%s = %q, want %v", label, r, want)
	}
	if got != want {
		t.Errorf("%s = %v, want %v", label, got, want)
	}
}

func TestAnalyzerRun(t *testing.T) {
	a := testAnalyzer(t)
	if err := a.Run(100); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	t.Run("yield", func(t *testing.T) {
		y := a.Metrics.Derived(DerivedYield)
		if y == nil {
			t.Fatal("yield metric not derived")
		}
		want := map[string]float64{
			"2022/12/30": 0.21212,
			"2023/12/30": 0.25,
			"2024/12/30": 0.88448,
			"2025/3/30":  0.09034,
			"2025/6/30":  1.77817,
			"2025/9/30":  0.07143,
			"current":    0.11111,
		}
		for key, v := range want {
			assertCell(t, y, key, v)
		}
		// The oldest price date is the baseline and gets no yield.
		if y.Rate("2021/12/30").IsSet() {
			t.Errorf("yield[2021/12/30] = %q, want no value", y.Rate("2021/12/30"))
		}
		assertRate(t, "yield total", y.Growth.Total, 9.29648)
		assertRate(t, "yield yearly", y.Growth.Yearly, 0.8623)
		assertRate(t, "yield ttm", y.Growth.TTM, 3.40352)
	})

	t.Run("net debt ratio", func(t *testing.T) {
		d := a.Metrics.Derived(DerivedNetDebt)
		want := map[string]float64{
			"2021/12/30": -0.03333,
			"2022/12/30": -0.025,
			"2023/12/30": -0.01667,
			"2024/12/30": -0.01111,
			"2025/3/30":  -0.03333,
			"2025/6/30":  -0.01429,
			"2025/9/30":  -0.00781,
			"current":    -0.00781,
		}
		for key, v := range want {
			assertCell(t, d, key, v)
		}
	})

	t.Run("enterprise value", func(t *testing.T) {
		d := a.Metrics.Derived(DerivedEV)
		want := map[string]float64{
			"2021/12/30": 19, "2022/12/30": 39, "2023/12/30": 79, "2024/12/30": 119,
			"2025/3/30": 139, "2025/6/30": 159, "2025/9/30": 179, "current": 199,
		}
		for key, v := range want {
			assertCell(t, d, key, v)
		}
	})

	t.Run("valuation ratios", func(t *testing.T) {
		evoi := map[string]float64{
			"2021/12/30": 0.63333, "2022/12/30": 0.975, "2023/12/30": 1.31667, "2024/12/30": 1.32222,
			"2025/3/30": 4.63333, "2025/6/30": 2.27143, "2025/9/30": 1.39844, "current": 1.55469,
		}
		for key, v := range evoi {
			assertCell(t, a.Metrics.Derived(DerivedEVOI), key, v)
		}
		evni := map[string]float64{
			"2021/12/30": 1.9, "2022/12/30": 2.6, "2023/12/30": 3.16, "2024/12/30": 3.4,
			"2025/3/30": 11.58333, "2025/6/30": 5.67857, "2025/9/30": 4.06818, "current": 4.52273,
		}
		for key, v := range evni {
			assertCell(t, a.Metrics.Derived(DerivedEVNI), key, v)
		}
	})

	t.Run("market to book", func(t *testing.T) {
		d := a.Metrics.Derived(DerivedMVBV)
		want := map[string]float64{
			"2021/12/30": 0.06667, "2022/12/30": 0.11429, "2023/12/30": 0.2, "2024/12/30": 0.26667,
			"2025/3/30": 0.29167, "2025/6/30": 0.30769, "2025/9/30": 0.32432, "current": 0.36036,
		}
		for key, v := range want {
			assertCell(t, d, key, v)
		}
	})

	t.Run("real growth", func(t *testing.T) {
		want := map[string]Growth{
			MetricEquity:      {Total: Num(-0.59727), Yearly: Num(-0.21536), TTM: Num(-0.02418)},
			MetricTotalAssets: {Total: Num(-0.60089), Yearly: Num(-0.21725), TTM: Num(-0.03297)},
			MetricRevenue:     {Total: Num(-0.47753), Yearly: Num(-0.15896), TTM: Num(-0.24647)},
			MetricOperating:   {Total: Num(-0.07117), Yearly: Num(-0.0195), TTM: Num(0.19348)},
			MetricNetIncome:   {Total: Num(-0.04215), Yearly: Num(-0.01142), TTM: Num(0.04142)},
		}
		for name, g := range want {
			got := a.Metrics.Base(name).Growth
			if got != g {
				t.Errorf("%s growth = %+v, want %+v", name, got, g)
			}
		}
	})

	t.Run("selected growth", func(t *testing.T) {
		d := a.Metrics.Derived(DerivedSelected)
		if d == nil {
			t.Fatal("selected growth not derived")
		}
		assertRate(t, "selected total", d.Growth.Total, -0.25984)
		assertRate(t, "selected ttm", d.Growth.TTM, -0.10253)
		assertRate(t, "selected yearly", d.Growth.Yearly, -0.0771)
	})

	t.Run("current column", func(t *testing.T) {
		if v, _ := a.Metrics.Base(MetricPrice).Value(CurrentKey); v != 100 {
			t.Errorf("current price = %v, want live quote 100", v)
		}
		if v, _ := a.Metrics.Base(MetricEquity).Value(CurrentKey); v != 555 {
			t.Errorf("current equity = %v, want carried-forward 555", v)
		}
		if _, ok := a.Metrics.Base(MetricDividend).Value(CurrentKey); ok {
			t.Error("dividend should have no current value")
		}
	})
}

func TestAnalyzerRun_MissingPrice(t *testing.T) {
	a := testAnalyzer(t)
	set := NewMetricSet()
	for _, m := range a.Metrics.BaseMetrics() {
		if m.Name != MetricPrice {
			set.AddBase(m)
		}
	}
	a.Metrics = set
	if err := a.Run(100); !errors.Is(err, ErrMissingMetric) {
		t.Errorf("Run() error = %v, want ErrMissingMetric", err)
	}
}

func TestAnalyzerRun_MissingInflation(t *testing.T) {
	a := testAnalyzer(t)
	a.Inflation = NewInflationSeries(RegionTR, nil)
	if err := a.Run(100); !errors.Is(err, ErrMissingDateData) {
		t.Errorf("Run() error = %v, want ErrMissingDateData", err)
	}
}

// A Q4 report completes the fiscal year; the TTM interpolation refuses it.
func TestAnalyzerRun_Q4Unimplemented(t *testing.T) {
	axis, err := NewAxis(
		[]date.Date{date.New(2024, time.December, 30)},
		[]date.Date{date.New(2023, time.December, 30), date.New(2022, time.December, 30)},
	)
	if err != nil {
		t.Fatalf("NewAxis() error = %v", err)
	}
	a := testAnalyzer(t)
	a.Axis = axis
	if err := a.Run(100); !errors.Is(err, ErrUnimplemented) {
		t.Errorf("Run() error = %v, want ErrUnimplemented", err)
	}
}

func TestAnalyzerRun_ShortHistory(t *testing.T) {
	// Listed mid-2024: everything before is null, not zero. The pipeline
	// must anchor growth at the first available date instead of failing.
	a := testAnalyzer(t)
	for _, m := range a.Metrics.BaseMetrics() {
		for _, key := range []string{"2021/12/30", "2022/12/30", "2023/12/30"} {
			delete(m.values, key)
		}
	}
	// TTM interpolation still needs the previous finished year, and the
	// yield TTM needs a price delta into the last finished year.
	a.Metrics.Base(MetricPrice).Set("2023/12/30", 40)
	a.Metrics.Base(MetricEquity).Set("2023/12/30", 400)
	a.Metrics.Base(MetricTotalAssets).Set("2023/12/30", 800)
	a.Metrics.Base(MetricRevenue).Set("2023/12/30", 200)
	a.Metrics.Base(MetricOperating).Set("2023/12/30", 60)
	a.Metrics.Base(MetricNetIncome).Set("2023/12/30", 25)

	if err := a.Run(100); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	dates, err := a.Axis.AvailableDates(a.Metrics, MetricPrice)
	if err != nil {
		t.Fatalf("AvailableDates() error = %v", err)
	}
	want := []string{"2023/12/30", "2024/12/30", "2025/3/30", "2025/6/30", "2025/9/30", "current"}
	if len(dates) != len(want) {
		t.Fatalf("available dates = %v, want %v", dates, want)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Fatalf("available dates = %v, want %v", dates, want)
		}
	}
}

// A loss-making quarter has no meaningful debt or valuation multiple; the
// ratios over that denominator read N/A there while other dates keep their
// numbers.
func TestAnalyzerRun_LossQuarter(t *testing.T) {
	a := testAnalyzer(t)
	a.Metrics.Base(MetricOperating).Set("2023/12/30", -5)
	if err := a.Run(100); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, name := range []string{DerivedNetDebt, DerivedEVOI} {
		if r := a.Metrics.Derived(name).Rate("2023/12/30"); !r.IsUndefined() {
			t.Errorf("%s[2023/12/30] = %q, want N/A", name, r)
		}
	}
	assertCell(t, a.Metrics.Derived(DerivedNetDebt), "2024/12/30", -0.01111)
	assertCell(t, a.Metrics.Derived(DerivedEVOI), "2024/12/30", 1.32222)
	// Ratios over other denominators are untouched.
	assertCell(t, a.Metrics.Derived(DerivedEVNI), "2023/12/30", 3.16)
}

// The selected basket must average defined growth only; an undefined member
// is a configuration error that fails the whole run.
func TestAnalyzerRun_UndefinedSelectedGrowth(t *testing.T) {
	a := testAnalyzer(t)
	// A negative baseline leaves Net income with undefined total growth,
	// and Net income is in the fixture's basket.
	a.Metrics.Base(MetricNetIncome).Set("2021/12/30", -10)
	err := a.Run(100)
	if err == nil {
		t.Fatal("Run() = nil, want error for undefined selected growth")
	}
	if !strings.Contains(err.Error(), MetricNetIncome) {
		t.Errorf("Run() error = %v, want it to name the selected metric", err)
	}
}

func TestNewAnalyzer_UnsupportedRegion(t *testing.T) {
	cfg := StockConfig{Symbol: "X", Region: "de", OutstandingShares: 1, TrimDigit: 1}
	if _, err := NewAnalyzer(testAxis(t), cfg, testInflation(t), NewMetricSet()); !errors.Is(err, ErrUnsupportedRegion) {
		t.Errorf("NewAnalyzer() error = %v, want ErrUnsupportedRegion", err)
	}
}
