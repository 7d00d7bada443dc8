package reschedule_booking

import (
	"time"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
)

// Request модель запроса на перенос записи
type Request struct {
	Code      string    // Код подтверждения
	StartTime time.Time // Новое время начала
}

// Response модель ответа с перенесенной записью
type Response struct {
	ID                int64
	ConfirmationCode  string
	Barber            string
	CustomerName      string
	Services          []string
	PreviousStartTime time.Time
	StartTime         time.Time
	EndTime           time.Time
	DurationMinutes   int
	TotalPriceCents   int64
	Status            string
}

func toResponse(a *domain.Appointment, previousStart time.Time) *Response {
	return &Response{
		ID:                a.ID,
		ConfirmationCode:  a.ConfirmationCode,
		Barber:            a.Barber,
		CustomerName:      a.CustomerName,
		Services:          a.Services,
		PreviousStartTime: previousStart,
		StartTime:         a.StartTime,
		EndTime:           a.EndTime(),
		DurationMinutes:   a.DurationMinutes,
		TotalPriceCents:   a.TotalPriceCents,
		Status:            string(a.Status),
	}
}
