package domain

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// CalendarDate is a civil date without a time component, interpreted in the shop's location
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewCalendarDate returns the civil date of t in t's location
func NewCalendarDate(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// ParseCalendarDate parses a YYYY-MM-DD string
func ParseCalendarDate(s string) (CalendarDate, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return NewCalendarDate(t), nil
}

// String formats the date as YYYY-MM-DD
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsZero reports whether the date is unset
func (d CalendarDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// At returns the instant minutesFromMidnight minutes after local midnight in loc
func (d CalendarDate) At(loc *time.Location, minutesFromMidnight int) time.Time {
	return time.Date(d.Year, d.Month, d.Day, minutesFromMidnight/60, minutesFromMidnight%60, 0, 0, loc)
}

// Weekday returns the day of the week
func (d CalendarDate) Weekday() time.Weekday {
	return d.At(time.UTC, 0).Weekday()
}

// AddDays returns the date n days later (or earlier for negative n)
func (d CalendarDate) AddDays(n int) CalendarDate {
	return NewCalendarDate(d.At(time.UTC, 0).AddDate(0, 0, n))
}

// Before reports whether d is strictly before other
func (d CalendarDate) Before(other CalendarDate) bool {
	return d.At(time.UTC, 0).Before(other.At(time.UTC, 0))
}

// After reports whether d is strictly after other
func (d CalendarDate) After(other CalendarDate) bool {
	return other.Before(d)
}

// Value implements driver.Valuer for DATE columns
func (d CalendarDate) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner for DATE columns
func (d *CalendarDate) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewCalendarDate(v)
		return nil
	case []byte:
		parsed, err := ParseCalendarDate(string(v[:min(len(v), len(DateFormat))]))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseCalendarDate(v[:min(len(v), len(DateFormat))])
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T into CalendarDate", ErrInvalidDate, src)
	}
}

// MarshalText implements encoding.TextMarshaler
func (d CalendarDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *CalendarDate) UnmarshalText(text []byte) error {
	parsed, err := ParseCalendarDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
