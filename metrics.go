package eot

import "fmt"

// Canonical base metric names. Raw statement files use these exact strings;
// lookups are exact-match, absence of an expected name is a hard failure.
const (
	MetricPrice       = "Price"
	MetricDividend    = "Dividend"
	MetricEquity      = "Equity"
	MetricTotalAssets = "Total assets"
	MetricRevenue     = "Revenue"
	MetricOperating   = "Operating income"
	MetricNetIncome   = "Net income"
	MetricCash        = "Cash & cash equivalents"
	MetricShortTerm   = "Short term liabilities"
	MetricLongTerm    = "Long term liabilities"
)

// Derived metric names produced by the analyzer, in pipeline order.
const (
	DerivedYield    = "Yield"
	DerivedNetDebt  = "Net debt / Operating income"
	DerivedEV       = "Enterprise value"
	DerivedEVOI     = "EV / Operating income"
	DerivedEVNI     = "EV / Net income"
	DerivedMVBV     = "Market value / Book value"
	DerivedSelected = "Selected growth"
)

// Growth holds the three growth figures attached to a metric once the
// analyzer has run. Each figure is undefined (not merely zero) when the
// underlying base value was non-positive.
type Growth struct {
	Total  Rate `json:"total"`
	Yearly Rate `json:"yearly"`
	TTM    Rate `json:"ttm"`
}

// BaseMetric is one raw financial statement line. A date key with no entry
// means the figure was never reported (the security may not have existed);
// that is distinct from a reported zero.
type BaseMetric struct {
	Name   string
	values map[string]float64
	Growth Growth
}

// NewBaseMetric returns an empty metric with the given canonical name.
func NewBaseMetric(name string) *BaseMetric {
	return &BaseMetric{Name: name, values: make(map[string]float64)}
}

// Set records the metric's value for a date key, replacing any earlier one.
func (m *BaseMetric) Set(key string, v float64) { m.values[key] = v }

// Value returns the figure for a date key and whether it was reported.
func (m *BaseMetric) Value(key string) (float64, bool) {
	v, ok := m.values[key]
	return v, ok
}

// ValueOrZero returns the figure for a date key, defaulting to zero.
// Balance-sheet items like cash and liabilities use this: an existing but
// unreported period counts as zero for net-debt purposes.
func (m *BaseMetric) ValueOrZero(key string) float64 { return m.values[key] }

// Require returns the figure for a date key, or a MissingDateData error
// naming the metric and date when it was never reported.
func (m *BaseMetric) Require(key string) (float64, error) {
	v, ok := m.values[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s at %s", ErrMissingDateData, m.Name, key)
	}
	return v, nil
}

// DerivedMetric is a per-date series produced by the analyzer. Cells are
// Rates: a date may hold a number, an explicit "undefined" marker, or no
// entry at all (the ratio was skipped for that date).
type DerivedMetric struct {
	Name   string
	values map[string]Rate
	Growth Growth
}

// NewDerivedMetric returns an empty derived series with the given name.
func NewDerivedMetric(name string) *DerivedMetric {
	return &DerivedMetric{Name: name, values: make(map[string]Rate)}
}

// Set records the cell for a date key.
func (d *DerivedMetric) Set(key string, r Rate) { d.values[key] = r }

// Rate returns the cell for a date key; the zero Rate when the date was skipped.
func (d *DerivedMetric) Rate(key string) Rate { return d.values[key] }

// Require returns the cell for a date key, failing when the date was skipped.
func (d *DerivedMetric) Require(key string) (Rate, error) {
	r, ok := d.values[key]
	if !ok {
		return Rate{}, fmt.Errorf("%w: %s at %s", ErrMissingDateData, d.Name, key)
	}
	return r, nil
}

// StockConfig carries the per-security parameters read from the statement
// file's #config pseudo-row.
type StockConfig struct {
	Symbol string
	Region Region
	// OutstandingShares is the share count used for market value.
	OutstandingShares float64
	// TrimDigit is the scale factor raw statement values were pre-divided
	// by; market value must be divided by it too so ratios stay consistent.
	TrimDigit float64
	// GrowthParams names the base metrics whose real growth figures are
	// averaged into the Selected growth summary.
	GrowthParams []string
}

// MetricSet is the per-request store the analyzer reads from and writes to.
// It is built fresh for every derivation; nothing is shared across requests.
type MetricSet struct {
	base         map[string]*BaseMetric
	baseOrder    []string
	derived      map[string]*DerivedMetric
	derivedOrder []string
}

// NewMetricSet returns an empty store.
func NewMetricSet() *MetricSet {
	return &MetricSet{
		base:    make(map[string]*BaseMetric),
		derived: make(map[string]*DerivedMetric),
	}
}

// AddBase registers a base metric, keeping first-added order for rendering.
func (s *MetricSet) AddBase(m *BaseMetric) {
	if _, ok := s.base[m.Name]; !ok {
		s.baseOrder = append(s.baseOrder, m.Name)
	}
	s.base[m.Name] = m
}

// Base returns the named base metric, or nil.
func (s *MetricSet) Base(name string) *BaseMetric { return s.base[name] }

// RequireBase returns the named base metric, or a MissingMetric error.
func (s *MetricSet) RequireBase(name string) (*BaseMetric, error) {
	m, ok := s.base[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingMetric, name)
	}
	return m, nil
}

// valueOrZero reads a base metric value defaulting to zero when either the
// metric or the date is absent. Only balance-sheet components use this.
func (s *MetricSet) valueOrZero(name, key string) float64 {
	if m := s.Base(name); m != nil {
		return m.ValueOrZero(key)
	}
	return 0
}

// AddDerived registers a derived metric in pipeline order.
func (s *MetricSet) AddDerived(d *DerivedMetric) {
	if _, ok := s.derived[d.Name]; !ok {
		s.derivedOrder = append(s.derivedOrder, d.Name)
	}
	s.derived[d.Name] = d
}

// Derived returns the named derived metric, or nil.
func (s *MetricSet) Derived(name string) *DerivedMetric { return s.derived[name] }

// BaseMetrics returns the base metrics in the order they were added.
func (s *MetricSet) BaseMetrics() []*BaseMetric {
	out := make([]*BaseMetric, 0, len(s.baseOrder))
	for _, name := range s.baseOrder {
		out = append(out, s.base[name])
	}
	return out
}

// DerivedMetrics returns the derived metrics in pipeline order.
func (s *MetricSet) DerivedMetrics() []*DerivedMetric {
	out := make([]*DerivedMetric, 0, len(s.derivedOrder))
	for _, name := range s.derivedOrder {
		out = append(out, s.derived[name])
	}
	return out
}

// PopulateCurrent fills the synthetic "current" column before derivation.
// Every base metric carries its last reported figure forward, except Price,
// which takes the live quote (share price is observable in real time while
// statement data is not), and Dividend, which has no meaningful live value.
// A missing Price metric is fatal: every valuation ratio needs it.
func (s *MetricSet) PopulateCurrent(axis *Axis, livePrice float64) error {
	price, err := s.RequireBase(MetricPrice)
	if err != nil {
		return err
	}
	price.Set(CurrentKey, livePrice)
	last := axis.LastReportedKey()
	for _, m := range s.BaseMetrics() {
		switch m.Name {
		case MetricPrice, MetricDividend:
			continue
		}
		if v, ok := m.Value(last); ok {
			m.Set(CurrentKey, v)
		}
	}
	return nil
}
