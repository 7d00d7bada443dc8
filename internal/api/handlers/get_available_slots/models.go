package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/KingsBarber-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime string `json:"startTime"` // RFC 3339 в часовом поясе салона
	EndTime   string `json:"endTime"`
	Label     string `json:"label"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string         `json:"date"`
	Barber          string         `json:"barber"`
	DurationMinutes int            `json:"durationMinutes"`
	PriceCents      int64          `json:"priceCents,omitempty"`
	Closed          bool           `json:"closed"`
	AwayDay         bool           `json:"awayDay"`
	Slots           []SlotResponse `json:"slots"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(barber, date, duration string, services []string) (*getAvailableSlots.Request, error) {
	day, err := domain.ParseCalendarDate(date)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		Barber:   barber,
		Date:     day,
		Services: services,
	}

	if duration != "" {
		minutes, err := strconv.Atoi(duration)
		if err != nil {
			return nil, err
		}
		req.DurationMinutes = minutes
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response, loc *time.Location) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		Date:            resp.Date.String(),
		Barber:          resp.Barber,
		DurationMinutes: resp.DurationMinutes,
		PriceCents:      resp.PriceCents,
		Closed:          resp.Closed,
		AwayDay:         resp.AwayDay,
		Slots:           make([]SlotResponse, 0, len(resp.Slots)),
	}
	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			StartTime: s.Start.In(loc).Format(time.RFC3339),
			EndTime:   s.End.In(loc).Format(time.RFC3339),
			Label:     s.Label,
		})
	}
	return out
}
