package barber_day

import (
	"context"

	"github.com/m04kA/KingsBarber-BookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	BarberDay(ctx context.Context, req *models.BarberDayRequest) (*models.BarberDayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
