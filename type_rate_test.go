package eot

import (
	"encoding/json"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.123456789, 0.12346},
		{0.123454, 0.12345},
		{-0.000005, -0.00001}, // half away from zero
		{3.5936, 3.5936},
		{0, 0},
	}
	for _, tc := range tests {
		if got := round(tc.in); got != tc.want {
			t.Errorf("round(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
	// Rounding is idempotent: a rounded value passes through unchanged.
	if got := round(round(9.29648123)); got != 9.29648 {
		t.Errorf("round(round(x)) = %v, want 9.29648", got)
	}
}

func TestRate(t *testing.T) {
	n := Num(0.123456789)
	if v, ok := n.Value(); !ok || v != 0.12346 {
		t.Errorf("Num().Value() = %v, %v", v, ok)
	}
	if n.String() != "0.12346" {
		t.Errorf("Num().String() = %q", n.String())
	}

	u := Undefined()
	if _, ok := u.Value(); ok {
		t.Error("Undefined().Value() reported a number")
	}
	if !u.IsUndefined() || !u.IsSet() {
		t.Error("Undefined() flags wrong")
	}
	if u.String() != "N/A" {
		t.Errorf("Undefined().String() = %q", u.String())
	}

	var zero Rate
	if zero.IsSet() {
		t.Error("zero Rate reports set")
	}
}

func TestRateJSON(t *testing.T) {
	tests := []struct {
		r    Rate
		want string
	}{
		{Num(0.025), `0.025`},
		{Undefined(), `"N/A"`},
		{Rate{}, `null`},
	}
	for _, tc := range tests {
		b, err := json.Marshal(tc.r)
		if err != nil {
			t.Fatalf("Marshal(%q) error = %v", tc.r, err)
		}
		if string(b) != tc.want {
			t.Errorf("Marshal(%q) = %s, want %s", tc.r, b, tc.want)
		}
		var back Rate
		if err := json.Unmarshal(b, &back); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", b, err)
		}
		if back != tc.r {
			t.Errorf("round trip of %q gave %q", tc.r, back)
		}
	}
}
