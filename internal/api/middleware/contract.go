package middleware

import (
	"context"
	"time"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
)

// Authenticator проверяет сессию сотрудника
type Authenticator interface {
	Authenticate(ctx context.Context, sessionID string) (domain.Staff, error)
}

// HTTPMetrics интерфейс для записи метрик HTTP запросов
type HTTPMetrics interface {
	RecordHTTPRequest(method, path string, status int, elapsed time.Duration)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
