package domain

import (
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// AppointmentSource describes how the appointment got into the ledger
type AppointmentSource string

const (
	SourceOnline AppointmentSource = "online"
	SourceWalkIn AppointmentSource = "walk_in"
)

// Appointment represents a booked visit to a barber
type Appointment struct {
	ID               int64
	ConfirmationCode string
	Barber           string
	CustomerName     string
	CustomerPhone    string
	Services         []string
	StartTime        time.Time
	DurationMinutes  int
	TotalPriceCents  int64
	Notes            *string
	Status           AppointmentStatus
	Source           AppointmentSource

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EndTime returns the exclusive end of the appointment interval
func (a *Appointment) EndTime() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// IsActive returns true if the appointment occupies time on the barber's calendar
func (a *Appointment) IsActive() bool {
	return a.Status == StatusConfirmed
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the appointment can be moved to another time
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusConfirmed
}

// BarberDayFilter фильтр для получения записей барбера на конкретный день
type BarberDayFilter struct {
	Barber          string       // Обязательный параметр
	Date            CalendarDate // День в локальном времени салона
	Location        *time.Location
	IncludeInactive bool // Включать ли отменённые записи
}

// DayBounds возвращает полуоткрытый интервал [начало дня, начало следующего дня)
func (f BarberDayFilter) DayBounds() (time.Time, time.Time) {
	loc := f.Location
	if loc == nil {
		loc = time.UTC
	}
	return f.Date.At(loc, 0), f.Date.AddDays(1).At(loc, 0)
}
