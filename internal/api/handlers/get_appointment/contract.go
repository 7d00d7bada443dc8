package get_appointment

import (
	"context"

	"github.com/m04kA/KingsBarber-BookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetByCode(ctx context.Context, code string) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
