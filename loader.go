package eot

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hahuaz/eot/date"
)

// The data directory layout:
//
//	stocks/<region>/<SYMBOL>.tsv   statement tables, one row per base metric
//	stocks-dynamic/<region>.json   live quote per symbol
//	inflation/<region>.csv         regional inflation series
//	daily/<SYMBOL>.csv             daily close series for the returns basket
//
// Statement tables are tab separated: the header row is "metricName" followed
// by date keys, newest first; an empty cell means the figure was never
// reported. The "#config" pseudo-row carries, in its first three non-empty
// cells, the outstanding share count, the trim digit and the pipe-separated
// selected-growth basket.

// DynamicInfo is one symbol's entry in the live data file.
type DynamicInfo struct {
	Price float64  `json:"price"`
	Notes []string `json:"notes,omitempty"`
}

// LoadStock reads a statement table into a metric set and its config.
func LoadStock(dataPath string, region Region, symbol string) (*MetricSet, StockConfig, error) {
	cfg := StockConfig{Symbol: symbol, Region: region}
	path := filepath.Join(dataPath, "stocks", string(region), symbol+".tsv")
	f, err := os.Open(path)
	if err != nil {
		return nil, cfg, fmt.Errorf("could not open statement file %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1 // statement tables are hand maintained, allow ragged rows
	rows, err := r.ReadAll()
	if err != nil {
		return nil, cfg, fmt.Errorf("could not parse statement file %q: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, cfg, fmt.Errorf("statement file %q has no metric rows", path)
	}
	header := rows[0]

	set := NewMetricSet()
	configSeen := false
	for _, row := range rows[1:] {
		name := strings.TrimSpace(row[0])
		if name == "#config" {
			if err := parseConfig(&cfg, row[1:]); err != nil {
				return nil, cfg, fmt.Errorf("statement file %q: %w", path, err)
			}
			configSeen = true
			continue
		}
		m := NewBaseMetric(name)
		for i := 1; i < len(row) && i < len(header); i++ {
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, cfg, fmt.Errorf("statement file %q: metric %s at %s: %w", path, name, header[i], err)
			}
			m.Set(strings.TrimSpace(header[i]), v)
		}
		set.AddBase(m)
	}
	if !configSeen {
		return nil, cfg, fmt.Errorf("statement file %q has no #config row", path)
	}
	return set, cfg, nil
}

// parseConfig reads the #config pseudo-row: share count, trim digit and the
// selected-growth basket, taken from the row's first three non-empty cells.
func parseConfig(cfg *StockConfig, cells []string) error {
	var fields []string
	for _, c := range cells {
		if c = strings.TrimSpace(c); c != "" {
			fields = append(fields, c)
		}
	}
	if len(fields) < 3 {
		return fmt.Errorf("#config row needs shares, trim digit and growth metrics, got %d fields", len(fields))
	}
	shares, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return fmt.Errorf("#config outstanding shares: %w", err)
	}
	trim, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return fmt.Errorf("#config trim digit: %w", err)
	}
	if shares <= 0 || trim <= 0 {
		return fmt.Errorf("#config shares and trim digit must be positive, got %v and %v", shares, trim)
	}
	cfg.OutstandingShares = shares
	cfg.TrimDigit = trim
	for _, p := range strings.Split(fields[2], "|") {
		if p = strings.TrimSpace(p); p != "" {
			cfg.GrowthParams = append(cfg.GrowthParams, p)
		}
	}
	if len(cfg.GrowthParams) == 0 {
		return fmt.Errorf("#config selects no growth metrics")
	}
	return nil
}

// LoadInflation reads a region's inflation series.
// Columns: date, mom, qoq, yoy, ytd, accumulative.
func LoadInflation(dataPath string, region Region) (*InflationSeries, error) {
	path := filepath.Join(dataPath, "inflation", string(region)+".csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open inflation file %q: %w", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse inflation file %q: %w", path, err)
	}
	var records []Inflation
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 6 {
			return nil, fmt.Errorf("inflation file %q: row %d has %d columns, want 6", path, i+1, len(row))
		}
		day, err := date.Parse(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("inflation file %q: row %d: %w", path, i+1, err)
		}
		rec := Inflation{Date: day}
		for j, dst := range []*float64{&rec.MoM, &rec.QoQ, &rec.YoY, &rec.YTD, &rec.Cumulative} {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[j+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("inflation file %q: row %d: %w", path, i+1, err)
			}
			*dst = v
		}
		records = append(records, rec)
	}
	return NewInflationSeries(region, records), nil
}

// LoadDynamicInfo reads the live data of every symbol in a region.
func LoadDynamicInfo(dataPath string, region Region) (map[string]DynamicInfo, error) {
	path := filepath.Join(dataPath, "stocks-dynamic", string(region)+".json")
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read live data file %q: %w", path, err)
	}
	var info map[string]DynamicInfo
	if err := json.Unmarshal(content, &info); err != nil {
		return nil, fmt.Errorf("could not decode live data file %q: %w", path, err)
	}
	return info, nil
}

// LoadDailySeries reads one symbol's daily close series. Columns: date, value.
func LoadDailySeries(dataPath, symbol string) (*date.History[float64], error) {
	path := filepath.Join(dataPath, "daily", symbol+".csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open daily file %q: %w", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse daily file %q: %w", path, err)
	}
	h := &date.History[float64]{}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		day, err := date.Parse(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("daily file %q: row %d: %w", path, i+1, err)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("daily file %q: row %d: %w", path, i+1, err)
		}
		h.Append(day, v)
	}
	return h, nil
}

// LoadBasket reads the four daily series the returns calculator tracks.
func LoadBasket(dataPath string) (PriceBasket, error) {
	var basket PriceBasket
	for _, s := range []struct {
		symbol string
		dst    **date.History[float64]
	}{
		{"USDTRY", &basket.USD},
		{"EURTRY", &basket.EUR},
		{"BGP", &basket.Fund},
		{"GOLD", &basket.Gold},
	} {
		h, err := LoadDailySeries(dataPath, s.symbol)
		if err != nil {
			return basket, err
		}
		*s.dst = h
	}
	return basket, nil
}
