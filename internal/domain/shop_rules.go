package domain

import (
	"fmt"
	"time"
)

// ShopRules holds the calendar-level booking rules of the shop
// Проверки часов работы и конфликтов выполняет scheduling, здесь только правила на уровне дат
type ShopRules struct {
	Location            *time.Location
	ClosedWeekdays      []time.Weekday
	BookingHorizonDays  int
	AllowPastSlotsToday bool
}

// Today returns the shop-local date of now
func (r ShopRules) Today(now time.Time) CalendarDate {
	return NewCalendarDate(now.In(r.location()))
}

// DateOf returns the shop-local date of t
func (r ShopRules) DateOf(t time.Time) CalendarDate {
	return NewCalendarDate(t.In(r.location()))
}

// IsClosed reports whether the shop is closed for the whole day
func (r ShopRules) IsClosed(date CalendarDate) bool {
	wd := date.Weekday()
	for _, closed := range r.ClosedWeekdays {
		if closed == wd {
			return true
		}
	}
	return false
}

// CheckBookableDate rejects dates before today and beyond the booking horizon
func (r ShopRules) CheckBookableDate(date CalendarDate, now time.Time) error {
	today := r.Today(now)
	if date.Before(today) {
		return fmt.Errorf("%w: %s is before %s", ErrDateInPast, date, today)
	}
	if r.BookingHorizonDays > 0 && date.After(today.AddDays(r.BookingHorizonDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateBeyondHorizon, r.BookingHorizonDays)
	}
	return nil
}

func (r ShopRules) location() *time.Location {
	if r.Location == nil {
		return time.UTC
	}
	return r.Location
}
