package events

import "time"

// Типы событий о записях
const (
	TypeBooked      = "appointment.booked"
	TypeRescheduled = "appointment.rescheduled"
	TypeCancelled   = "appointment.cancelled"
)

// AppointmentEvent событие об изменении записи
type AppointmentEvent struct {
	EventID          string    `json:"eventId"`
	Type             string    `json:"type"`
	AppointmentID    int64     `json:"appointmentId"`
	ConfirmationCode string    `json:"confirmationCode"`
	Barber           string    `json:"barber"`
	Services         []string  `json:"services"`
	StartTime        time.Time `json:"startTime"`
	DurationMinutes  int       `json:"durationMinutes"`
	Source           string    `json:"source"`
	OccurredAt       time.Time `json:"occurredAt"`
}
