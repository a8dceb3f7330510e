package ledger

import (
	"fmt"
	"time"
)

// Day is a calendar day with no time-of-day or location component.
// All engine computations are day-resolution.
type Day struct {
	t time.Time
}

// NewDay returns the Day for the given calendar date.
func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Day{t: t}, nil
}

// Today returns the current calendar day in UTC.
func Today() Day {
	now := time.Now().UTC()
	return NewDay(now.Year(), now.Month(), now.Day())
}

// String formats the day as YYYY-MM-DD.
func (d Day) String() string { return d.t.Format(DateFormat) }

// IsZero reports whether the day is the zero value.
func (d Day) IsZero() bool { return d.t.IsZero() }

// Before reports whether d is strictly before other.
func (d Day) Before(other Day) bool { return d.t.Before(other.t) }

// After reports whether d is strictly after other.
func (d Day) After(other Day) bool { return d.t.After(other.t) }

// Equal reports whether two days are the same calendar day.
func (d Day) Equal(other Day) bool { return d.t.Equal(other.t) }

// AddDays returns the day n days later (or earlier for negative n).
func (d Day) AddDays(n int) Day { return Day{t: d.t.AddDate(0, 0, n)} }

// DaysUntil returns the whole number of days from d to other.
func (d Day) DaysUntil(other Day) int {
	return int(other.t.Sub(d.t) / (24 * time.Hour))
}

// Time returns the underlying time at midnight UTC.
func (d Day) Time() time.Time { return d.t }

// MarshalJSON encodes the day as a YYYY-MM-DD string.
func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a YYYY-MM-DD string.
func (d *Day) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s", s)
	}
	parsed, err := ParseDay(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
