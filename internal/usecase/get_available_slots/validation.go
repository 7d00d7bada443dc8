package get_available_slots

import (
	"fmt"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Barber == "" {
		return fmt.Errorf("%w: barber is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	hasDuration := req.DurationMinutes != 0
	hasServices := len(req.Services) > 0

	if hasDuration == hasServices {
		return fmt.Errorf("%w: exactly one of duration or services must be given", ErrInvalidInput)
	}

	if hasDuration && (req.DurationMinutes < 0 || req.DurationMinutes > domain.MaxAppointmentMinutes) {
		return fmt.Errorf("%w: duration must be between 1 and %d minutes", ErrInvalidInput, domain.MaxAppointmentMinutes)
	}

	if len(req.Services) > domain.MaxServicesPerBooking {
		return fmt.Errorf("%w: at most %d services per booking", ErrInvalidInput, domain.MaxServicesPerBooking)
	}

	return nil
}
