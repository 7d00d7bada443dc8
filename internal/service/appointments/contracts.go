package appointments

import (
	"context"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/notifications"
)

// AppointmentRepository интерфейс журнала записей
type AppointmentRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Appointment, error)
	ListBarberDay(ctx context.Context, filter domain.BarberDayFilter) ([]*domain.Appointment, error)
	Cancel(ctx context.Context, id int64) error
}

// Catalog интерфейс каталога барберов
type Catalog interface {
	Barber(name string) (domain.Barber, bool)
}

// Notifier интерфейс уведомлений после фиксации изменений
type Notifier interface {
	Notify(ctx context.Context, kind notifications.Kind, appt *domain.Appointment)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
