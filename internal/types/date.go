// Package types implements special types for the cash flow client.
package types

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date is a calendar date with day precision. The time of day is always
// midnight UTC so that two Dates compare equal when they name the same day.
type Date time.Time

// NewDate returns a new Date.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the Date on which a time occurs in that time's location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Today returns the current date.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a string in RFC3339 full-date format ("2006-01-02") and
// returns the Date value it represents.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}

	return DateOf(t), nil
}

// String returns the date formatted as YYYY-MM-DD.
func (d Date) String() string {
	year, month, day := time.Time(d).Date()
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// Format formats the date with a time.Time reference layout.
func (d Date) Format(layout string) string {
	return time.Time(d).Format(layout)
}

// MarshalJSON implements the json.Marshaler interface.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// Both full RFC3339 timestamps and plain "2006-01-02" dates are accepted
// since the backend is not consistent about which one it returns.
func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	match, err := regexp.MatchString("^[0-9]{4}-[0-9]{2}-[0-9]{2}$", value)
	if err != nil {
		return err
	}

	pattern := "2006-01-02T15:04:05Z07:00"
	if match {
		pattern = "2006-01-02"
	}

	t, err := time.Parse(pattern, value)
	if err != nil {
		return err
	}

	*d = DateOf(t)
	return nil
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	return DateOf(time.Time(d).AddDate(0, 0, n))
}

// AddYears returns the date n years after d.
func (d Date) AddYears(n int) Date {
	return DateOf(time.Time(d).AddDate(n, 0, 0))
}

// Before reports whether d is before other.
func (d Date) Before(other Date) bool {
	return time.Time(d).Before(time.Time(other))
}

// After reports whether d is after other.
func (d Date) After(other Date) bool {
	return time.Time(d).After(time.Time(other))
}

// Equal reports whether d and other name the same day.
func (d Date) Equal(other Date) bool {
	return time.Time(d).Equal(time.Time(other))
}

// IsZero reports if the date is the zero value.
func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}
