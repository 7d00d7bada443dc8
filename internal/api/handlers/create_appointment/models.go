package create_appointment

import (
	"time"

	"github.com/m04kA/KingsBarber-BookingService/internal/api/handlers"
	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	createBooking "github.com/m04kA/KingsBarber-BookingService/internal/usecase/create_booking"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	Barber        string   `json:"barber" validate:"required"`
	CustomerName  string   `json:"customerName" validate:"required,max=100"`
	CustomerPhone string   `json:"customerPhone,omitempty" validate:"omitempty,e164"`
	Services      []string `json:"services" validate:"required,min=1,max=10,dive,required"`
	StartTime     string   `json:"startTime" validate:"required"` // RFC 3339 или "2025-10-16T15:15" по времени салона
	Notes         *string  `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID               int64    `json:"id"`
	ConfirmationCode string   `json:"confirmationCode"`
	Barber           string   `json:"barber"`
	CustomerName     string   `json:"customerName"`
	CustomerPhone    string   `json:"customerPhone,omitempty"`
	Services         []string `json:"services"`
	StartTime        string   `json:"startTime"`
	EndTime          string   `json:"endTime"`
	Label            string   `json:"label"`
	DurationMinutes  int      `json:"durationMinutes"`
	TotalPriceCents  int64    `json:"totalPriceCents"`
	Notes            *string  `json:"notes,omitempty"`
	Status           string   `json:"status"`
	Source           string   `json:"source"`
	CreatedAt        string   `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(source domain.AppointmentSource, loc *time.Location) (*createBooking.Request, error) {
	start, err := handlers.ParseStartTime(r.StartTime, loc)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Barber:        r.Barber,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Services:      r.Services,
		StartTime:     start,
		Notes:         r.Notes,
		Source:        source,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response, loc *time.Location) *AppointmentResponse {
	start := resp.StartTime.In(loc)
	return &AppointmentResponse{
		ID:               resp.ID,
		ConfirmationCode: resp.ConfirmationCode,
		Barber:           resp.Barber,
		CustomerName:     resp.CustomerName,
		CustomerPhone:    resp.CustomerPhone,
		Services:         resp.Services,
		StartTime:        start.Format(time.RFC3339),
		EndTime:          resp.EndTime.In(loc).Format(time.RFC3339),
		Label:            start.Format(domain.LabelFormat),
		DurationMinutes:  resp.DurationMinutes,
		TotalPriceCents:  resp.TotalPriceCents,
		Notes:            resp.Notes,
		Status:           resp.Status,
		Source:           resp.Source,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
	}
}
