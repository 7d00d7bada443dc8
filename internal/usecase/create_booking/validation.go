package create_booking

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
)

var phonePattern = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Barber == "" {
		return fmt.Errorf("%w: barber is required", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name exceeds %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	switch req.Source {
	case domain.SourceOnline:
		if req.CustomerPhone == "" {
			return fmt.Errorf("%w: phone is required", ErrInvalidInput)
		}
	case domain.SourceWalkIn:
	default:
		return fmt.Errorf("%w: unknown source %q", ErrInvalidInput, req.Source)
	}

	if req.CustomerPhone != "" && !phonePattern.MatchString(req.CustomerPhone) {
		return fmt.Errorf("%w: phone must be in E.164 format", ErrInvalidInput)
	}

	if len(req.Services) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	if len(req.Services) > domain.MaxServicesPerBooking {
		return fmt.Errorf("%w: at most %d services per booking", ErrInvalidInput, domain.MaxServicesPerBooking)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: start time is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
