package models

import (
	"time"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	"github.com/m04kA/KingsBarber-BookingService/pkg/ptr"
)

// Request модели

// BarberDayRequest запрос расписания барбера на день
type BarberDayRequest struct {
	Staff            domain.Staff        `json:"-"`
	Barber           string              `json:"barber"`
	Date             domain.CalendarDate `json:"date"`
	IncludeCancelled bool                `json:"includeCancelled,omitempty"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID               int64    `json:"id"`
	ConfirmationCode string   `json:"confirmationCode"`
	Barber           string   `json:"barber"`
	CustomerName     string   `json:"customerName"`
	CustomerPhone    string   `json:"customerPhone,omitempty"`
	Services         []string `json:"services"`
	StartTime        string   `json:"startTime"` // RFC 3339 в часовом поясе салона
	EndTime          string   `json:"endTime"`
	Label            string   `json:"label"` // "3:15 PM"
	DurationMinutes  int      `json:"durationMinutes"`
	TotalPriceCents  int64    `json:"totalPriceCents"`
	Notes            *string  `json:"notes,omitempty"`
	Status           string   `json:"status"`
	Source           string   `json:"source"`

	CancelledAt *string   `json:"cancelledAt,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BarberDayResponse ответ с расписанием барбера на день
type BarberDayResponse struct {
	Barber       string                `json:"barber"`
	Date         string                `json:"date"`
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO, время переводится в loc
func FromDomainAppointment(a *domain.Appointment, loc *time.Location) *AppointmentResponse {
	if a == nil {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	start := a.StartTime.In(loc)
	resp := &AppointmentResponse{
		ID:               a.ID,
		ConfirmationCode: a.ConfirmationCode,
		Barber:           a.Barber,
		CustomerName:     a.CustomerName,
		CustomerPhone:    a.CustomerPhone,
		Services:         a.Services,
		StartTime:        start.Format(time.RFC3339),
		EndTime:          a.EndTime().In(loc).Format(time.RFC3339),
		Label:            start.Format(domain.LabelFormat),
		DurationMinutes:  a.DurationMinutes,
		TotalPriceCents:  a.TotalPriceCents,
		Notes:            a.Notes,
		Status:           string(a.Status),
		Source:           string(a.Source),
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		resp.CancelledAt = ptr.Ptr(a.CancelledAt.In(loc).Format(time.RFC3339))
	}

	return resp
}

// FromDomainBarberDay конвертирует записи дня в DTO
func FromDomainBarberDay(barber string, date domain.CalendarDate, appts []*domain.Appointment, loc *time.Location) *BarberDayResponse {
	resp := &BarberDayResponse{
		Barber:       barber,
		Date:         date.String(),
		Appointments: make([]AppointmentResponse, 0, len(appts)),
	}
	for _, a := range appts {
		if dto := FromDomainAppointment(a, loc); dto != nil {
			resp.Appointments = append(resp.Appointments, *dto)
		}
	}
	return resp
}
