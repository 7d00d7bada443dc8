package list_services

import "github.com/m04kA/KingsBarber-BookingService/internal/domain"

type Catalog interface {
	Services() []domain.Service
	Barbers() []domain.Barber
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
