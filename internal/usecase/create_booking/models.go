package create_booking

import (
	"time"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
)

// Request модель запроса на создание записи
type Request struct {
	Barber        string                   // Имя барбера (без учета регистра)
	CustomerName  string                   // Имя клиента
	CustomerPhone string                   // Телефон в формате E.164, для walk-in опционален
	Services      []string                 // Выбранные услуги
	StartTime     time.Time                // Время начала
	Notes         *string                  // Заметки (опционально)
	Source        domain.AppointmentSource // online по умолчанию
}

// Response модель ответа с созданной записью
type Response struct {
	ID               int64
	ConfirmationCode string
	Barber           string
	CustomerName     string
	CustomerPhone    string
	Services         []string
	StartTime        time.Time
	EndTime          time.Time
	DurationMinutes  int
	TotalPriceCents  int64
	Notes            *string
	Status           string
	Source           string
	CreatedAt        time.Time
}

func toResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:               a.ID,
		ConfirmationCode: a.ConfirmationCode,
		Barber:           a.Barber,
		CustomerName:     a.CustomerName,
		CustomerPhone:    a.CustomerPhone,
		Services:         a.Services,
		StartTime:        a.StartTime,
		EndTime:          a.EndTime(),
		DurationMinutes:  a.DurationMinutes,
		TotalPriceCents:  a.TotalPriceCents,
		Notes:            a.Notes,
		Status:           string(a.Status),
		Source:           string(a.Source),
		CreatedAt:        a.CreatedAt,
	}
}
