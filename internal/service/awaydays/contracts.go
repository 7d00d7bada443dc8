package awaydays

import (
	"context"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
)

// AwayDayRepository интерфейс реестра выходных дней
type AwayDayRepository interface {
	List(ctx context.Context, barber string, from domain.CalendarDate) ([]domain.AwayDay, error)
	Add(ctx context.Context, barber string, date domain.CalendarDate) (bool, error)
	Remove(ctx context.Context, barber string, date domain.CalendarDate) (bool, error)
}

// Catalog интерфейс каталога барберов
type Catalog interface {
	Barber(name string) (domain.Barber, bool)
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
