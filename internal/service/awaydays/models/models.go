package models

import (
	"time"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
)

// Request модели

// ListRequest запрос списка выходных
type ListRequest struct {
	Staff  domain.Staff `json:"-"`
	Barber string       `json:"barber,omitempty"` // пусто: свой календарь для барбера, все для менеджера
}

// AddRequest запрос на отметку выходных дней
type AddRequest struct {
	Staff  domain.Staff          `json:"-"`
	Barber string                `json:"barber,omitempty"` // пусто: календарь самого сотрудника
	Dates  []domain.CalendarDate `json:"dates"`
}

// RemoveRequest запрос на снятие выходного
type RemoveRequest struct {
	Staff  domain.Staff        `json:"-"`
	Barber string              `json:"barber,omitempty"`
	Date   domain.CalendarDate `json:"date"`
}

// Response модели

// AwayDayResponse ответ с данными выходного
type AwayDayResponse struct {
	ID        int64     `json:"id"`
	Barber    string    `json:"barber"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// AwayDayListResponse ответ со списком выходных
type AwayDayListResponse struct {
	AwayDays []AwayDayResponse `json:"awayDays"`
}

// AddResponse ответ на отметку выходных
type AddResponse struct {
	Barber  string   `json:"barber"`
	Added   []string `json:"added"`   // новые отметки
	Skipped []string `json:"skipped"` // уже были отмечены
}

// Методы конвертации

// FromDomainAwayDays конвертирует список domain моделей в DTO
func FromDomainAwayDays(days []domain.AwayDay) *AwayDayListResponse {
	resp := &AwayDayListResponse{AwayDays: make([]AwayDayResponse, 0, len(days))}
	for _, d := range days {
		resp.AwayDays = append(resp.AwayDays, AwayDayResponse{
			ID:        d.ID,
			Barber:    d.Barber,
			Date:      d.Date.String(),
			CreatedAt: d.CreatedAt,
		})
	}
	return resp
}
