package eot

import (
	"errors"
	"testing"
)

func TestInflationSeriesAt(t *testing.T) {
	s := testInflation(t)
	rec, err := s.At("2024/12/30")
	if err != nil {
		t.Fatalf("At() error = %v", err)
	}
	if rec.YoY != 0.45 || rec.YTD != 0.45 {
		t.Errorf("At(2024/12/30) = %+v", rec)
	}
	if _, err := s.At("2018/12/30"); !errors.Is(err, ErrMissingDateData) {
		t.Errorf("At(2018/12/30) error = %v, want ErrMissingDateData", err)
	}
}

func TestPeriodRate(t *testing.T) {
	s := testInflation(t)
	tests := []struct {
		key  string
		want float64
	}{
		{CurrentKey, 0},      // no period has elapsed yet
		{"2025/9/30", 0.05},  // interim quarter uses QoQ
		{"2024/12/30", 0.45}, // year end uses YoY
	}
	for _, tc := range tests {
		got, err := s.PeriodRate(tc.key)
		if err != nil {
			t.Fatalf("PeriodRate(%s) error = %v", tc.key, err)
		}
		if got != tc.want {
			t.Errorf("PeriodRate(%s) = %v, want %v", tc.key, got, tc.want)
		}
	}
	if _, err := s.PeriodRate("2018/12/30"); err == nil {
		t.Error("PeriodRate on missing date: want error")
	}
}

func TestRealRate(t *testing.T) {
	if got := round(realRate(0.70005037, 0.30)); got != 0.30773 {
		t.Errorf("realRate = %v", got)
	}
	// Nominal growth equal to inflation is zero real growth.
	if got := realRate(0.45, 0.45); got != 0 {
		t.Errorf("realRate(0.45, 0.45) = %v, want 0", got)
	}
}
