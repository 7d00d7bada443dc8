package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	"github.com/m04kA/KingsBarber-BookingService/internal/scheduling"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/notifications"
)

// AppointmentRepository интерфейс журнала записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	ListBarberDay(ctx context.Context, filter domain.BarberDayFilter) ([]*domain.Appointment, error)
	LockBarberCalendar(ctx context.Context, barber string) error
}

// AwayDayRepository интерфейс реестра выходных дней
type AwayDayRepository interface {
	IsAway(ctx context.Context, barber string, date domain.CalendarDate) (bool, error)
}

// Catalog интерфейс каталога услуг и барберов
type Catalog interface {
	Barber(name string) (domain.Barber, bool)
	Quote(barber string, serviceNames []string) (domain.Quote, error)
}

// BookingGuard интерфейс проверки конфликтов при фиксации записи
type BookingGuard interface {
	TryBook(
		barber string,
		proposedStart time.Time,
		durationMinutes int,
		existing []*domain.Appointment,
		excludeID *int64,
	) (scheduling.Decision, error)
}

// PhoneVerifier интерфейс проверки подтвержденного телефона
type PhoneVerifier interface {
	IsVerified(ctx context.Context, phone string) (bool, error)
}

// Notifier интерфейс уведомлений после фиксации записи
type Notifier interface {
	Notify(ctx context.Context, kind notifications.Kind, appt *domain.Appointment)
}

// Metrics интерфейс учета исходов бронирования
type Metrics interface {
	RecordBooking(operation, outcome string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
