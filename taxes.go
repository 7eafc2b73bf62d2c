package eot

import "fmt"

// Region identifies the market a security trades in. It selects the tax
// policy and the inflation series used to deflate nominal figures.
type Region string

const (
	RegionTR Region = "tr"
	RegionUS Region = "us"
)

// ParseRegion validates a region code read from configuration.
func ParseRegion(s string) (Region, error) {
	switch Region(s) {
	case RegionTR:
		return RegionTR, nil
	case RegionUS:
		return RegionUS, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedRegion, s)
}

// TaxRates carries the per-region rates applied to investment income.
type TaxRates struct {
	// Withholding taken at source on interest and fund income.
	Withholding float64
	// Tax on dividend distributions.
	Dividend float64
}

// TaxPolicy returns the tax rates of the region. Rates are static constants
// maintained by hand; anything outside the supported set fails fast at
// configuration time.
func TaxPolicy(r Region) (TaxRates, error) {
	switch r {
	case RegionTR:
		return TaxRates{Withholding: 0.175, Dividend: 0.15}, nil
	case RegionUS:
		return TaxRates{Withholding: 0.24, Dividend: 0.20}, nil
	}
	return TaxRates{}, fmt.Errorf("%w: %q", ErrUnsupportedRegion, r)
}
