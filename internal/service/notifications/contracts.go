package notifications

import (
	"context"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	"github.com/m04kA/KingsBarber-BookingService/internal/integrations/smsgateway"
)

// SMSSender отправитель SMS
type SMSSender interface {
	Send(ctx context.Context, to, body string) (*smsgateway.SendResult, error)
}

// EventPublisher публикатор событий о записях
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, appt *domain.Appointment) error
}

// BarberDirectory справочник барберов (domain.Catalog)
type BarberDirectory interface {
	Barber(name string) (domain.Barber, bool)
}

// Metrics счетчик неудачных уведомлений
type Metrics interface {
	RecordNotificationFailure(channel string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
