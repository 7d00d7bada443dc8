package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
)

// AppointmentRepository интерфейс журнала записей
type AppointmentRepository interface {
	// ListBarberDay получает записи барбера на день, упорядоченные по времени начала
	ListBarberDay(ctx context.Context, filter domain.BarberDayFilter) ([]*domain.Appointment, error)
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

// SlotScheduler интерфейс планировщика слотов
type SlotScheduler interface {
	GenerateSlots(
		barber string,
		date domain.CalendarDate,
		durationMinutes int,
		existing []*domain.Appointment,
		isAwayDay bool,
	) ([]domain.Slot, error)
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
