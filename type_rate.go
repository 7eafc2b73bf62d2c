package eot

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// roundDigits is the number of decimal places kept at every derivation
// boundary, to suppress floating-point drift before values are fed into
// subsequent compounding steps.
const roundDigits = 5

// round rounds a value to the standard number of decimal places.
func round(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(roundDigits).Float64()
	return f
}

// Rate is a growth or ratio observation that may be undefined.
//
// A ratio is undefined when its underlying base value was non-positive:
// growth over a negative equity, for example, has no meaningful numeric
// representation. Undefined is a domain value, not an error, and it is
// contagious: any ratio derived from an undefined input is itself undefined.
type Rate struct {
	state uint8 // 0 unset, 1 numeric, 2 undefined
	num   float64
}

const (
	rateUnset uint8 = iota
	rateNumeric
	rateUndefined
)

// Num returns a defined Rate holding the value rounded to the standard precision.
func Num(v float64) Rate { return Rate{state: rateNumeric, num: round(v)} }

// Undefined returns the undefined Rate.
func Undefined() Rate { return Rate{state: rateUndefined} }

// IsSet reports whether the rate has been computed at all.
func (r Rate) IsSet() bool { return r.state != rateUnset }

// IsUndefined reports whether the rate is the undefined domain value.
func (r Rate) IsUndefined() bool { return r.state == rateUndefined }

// Value returns the numeric value and true, or 0 and false when the rate is
// unset or undefined.
func (r Rate) Value() (float64, bool) { return r.num, r.state == rateNumeric }

// String renders the rate the way the statement tables do: the number, or
// "N/A" for the undefined value, or the empty string when unset.
func (r Rate) String() string {
	switch r.state {
	case rateNumeric:
		return decimal.NewFromFloat(r.num).String()
	case rateUndefined:
		return "N/A"
	default:
		return ""
	}
}

// MarshalJSON encodes a numeric rate as a JSON number and the undefined rate
// as the string "N/A", matching the wire format consumed by callers.
func (r Rate) MarshalJSON() ([]byte, error) {
	switch r.state {
	case rateNumeric:
		return json.Marshal(r.num)
	case rateUndefined:
		return json.Marshal("N/A")
	default:
		return []byte("null"), nil
	}
}

func (r *Rate) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*r = Rate{}
	case string:
		*r = Undefined()
	case float64:
		*r = Num(x)
	}
	return nil
}

var _ json.Marshaler = (*Rate)(nil)
var _ json.Unmarshaler = (*Rate)(nil)
