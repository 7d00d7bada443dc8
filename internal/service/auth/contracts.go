package auth

import (
	"context"

	"github.com/m04kA/KingsBarber-BookingService/internal/infra/cache/session"
)

// SessionStore интерфейс хранилища сессий
type SessionStore interface {
	Create(ctx context.Context, username, barber string) (*session.Session, error)
	Get(ctx context.Context, id string) (*session.Session, error)
	Delete(ctx context.Context, id string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
