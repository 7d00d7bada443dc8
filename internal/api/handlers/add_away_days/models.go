package add_away_days

import (
	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/awaydays/models"
)

// AddAwayDaysRequest HTTP request model
type AddAwayDaysRequest struct {
	Barber string   `json:"barber,omitempty"`
	Dates  []string `json:"dates" validate:"required,min=1,max=60,dive,datetime=2006-01-02"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *AddAwayDaysRequest) ToServiceRequest(staff domain.Staff) (*models.AddRequest, error) {
	dates := make([]domain.CalendarDate, 0, len(r.Dates))
	for _, s := range r.Dates {
		d, err := domain.ParseCalendarDate(s)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return &models.AddRequest{
		Staff:  staff,
		Barber: r.Barber,
		Dates:  dates,
	}, nil
}
