package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// keyFormat is the permissive format used by the statement files
// (allows single-digit month/day, e.g. "2025/9/30").
const keyFormat = "2006/1/2"

// readDateFormat is the permissive ISO read format used by the daily series
// files (allows "2025-7-1").
const readDateFormat = "2006-1-2"

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02"

// Date represents a date with day-level granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Year returns current year.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.time().Month() }

// Day returns current day of the month.
func (d Date) Day() int { return d.d }

// Quarter returns the fiscal quarter (1..4) the date's month falls in.
func (d Date) Quarter() int { return (int(d.Month()) + 2) / 3 }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// String formats the date in its standard ISO-8601 format.
func (d Date) String() string { return d.time().Format(DateFormat) }

// Key formats the date the way the statement files key their columns
// ("2025/9/30", single-digit month and day).
func (d Date) Key() string { return d.time().Format(keyFormat) }

// MonthsTo returns the number of whole calendar months from d to x.
// The result is negative when x is before d.
func (d Date) MonthsTo(x Date) int {
	return (x.Year()-d.Year())*12 + int(x.Month()) - int(d.Month())
}

// Today returns the current date in local time.
func Today() Date {
	y, m, d := time.Now().Date()
	return New(y, m, d)
}

// Parse parses a Date from a string. It is lenient and accepts both the
// statement key format ("2025/9/30") and the ISO daily format ("2025-7-1").
func Parse(str string) (Date, error) {
	on, err := time.Parse(keyFormat, str)
	if err != nil {
		on, err = time.Parse(readDateFormat, str)
	}
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q or %q: %w", str, keyFormat, readDateFormat, err)
	}
	return New(on.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON implements the json specific way to unmarshall a date from a json string.
func (j *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	d, err := Parse(str)
	if err != nil {
		return err
	}
	*j = d
	return nil
}

func (j Date) MarshalJSON() ([]byte, error) {
	str := j.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
