package scheduling

import (
	"fmt"
	"time"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
)

// BusinessHours are the daily opening hours in minutes from local midnight
type BusinessHours struct {
	OpenMinutes  int
	CloseMinutes int
}

// ParseBusinessHours parses "HH:MM" open and close times
func ParseBusinessHours(openTime, closeTime string) (BusinessHours, error) {
	o, err := parseClock(openTime)
	if err != nil {
		return BusinessHours{}, err
	}
	c, err := parseClock(closeTime)
	if err != nil {
		return BusinessHours{}, err
	}
	h := BusinessHours{OpenMinutes: o, CloseMinutes: c}
	if err := h.Validate(); err != nil {
		return BusinessHours{}, err
	}
	return h, nil
}

// Validate checks that the shop opens before it closes on the same day
func (h BusinessHours) Validate() error {
	if h.OpenMinutes < 0 || h.CloseMinutes > 24*60 || h.OpenMinutes >= h.CloseMinutes {
		return fmt.Errorf("%w: business hours %d-%d", ErrInvalidConfig, h.OpenMinutes, h.CloseMinutes)
	}
	return nil
}

// SpanMinutes returns the length of the business day in minutes
func (h BusinessHours) SpanMinutes() int {
	return h.CloseMinutes - h.OpenMinutes
}

// Bounds returns the open and close instants of date in loc
func (h BusinessHours) Bounds(date domain.CalendarDate, loc *time.Location) (time.Time, time.Time) {
	return date.At(loc, h.OpenMinutes), date.At(loc, h.CloseMinutes)
}

// Contains reports whether [start, start+duration) lies within the business hours of start's local day
func (h BusinessHours) Contains(iv Interval, loc *time.Location) bool {
	openAt, closeAt := h.Bounds(domain.NewCalendarDate(iv.Start.In(loc)), loc)
	return !iv.Start.Before(openAt) && !iv.End.After(closeAt)
}

func parseClock(s string) (int, error) {
	t, err := time.Parse(domain.TimeFormat, s)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid clock time %q", ErrInvalidConfig, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}
