package reschedule_appointment

import (
	"time"

	"github.com/m04kA/KingsBarber-BookingService/internal/api/handlers"
	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	rescheduleBooking "github.com/m04kA/KingsBarber-BookingService/internal/usecase/reschedule_booking"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	StartTime string `json:"startTime" validate:"required"`
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	ID                int64    `json:"id"`
	ConfirmationCode  string   `json:"confirmationCode"`
	Barber            string   `json:"barber"`
	CustomerName      string   `json:"customerName"`
	Services          []string `json:"services"`
	PreviousStartTime string   `json:"previousStartTime"`
	StartTime         string   `json:"startTime"`
	EndTime           string   `json:"endTime"`
	Label             string   `json:"label"`
	DurationMinutes   int      `json:"durationMinutes"`
	TotalPriceCents   int64    `json:"totalPriceCents"`
	Status            string   `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(code string, loc *time.Location) (*rescheduleBooking.Request, error) {
	start, err := handlers.ParseStartTime(r.StartTime, loc)
	if err != nil {
		return nil, err
	}
	return &rescheduleBooking.Request{Code: code, StartTime: start}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response, loc *time.Location) *RescheduleResponse {
	start := resp.StartTime.In(loc)
	return &RescheduleResponse{
		ID:                resp.ID,
		ConfirmationCode:  resp.ConfirmationCode,
		Barber:            resp.Barber,
		CustomerName:      resp.CustomerName,
		Services:          resp.Services,
		PreviousStartTime: resp.PreviousStartTime.In(loc).Format(time.RFC3339),
		StartTime:         start.Format(time.RFC3339),
		EndTime:           resp.EndTime.In(loc).Format(time.RFC3339),
		Label:             start.Format(domain.LabelFormat),
		DurationMinutes:   resp.DurationMinutes,
		TotalPriceCents:   resp.TotalPriceCents,
		Status:            resp.Status,
	}
}
