package verification

import (
	"context"
	"time"
)

// CodeStore интерфейс хранилища одноразовых кодов
type CodeStore interface {
	SaveCode(ctx context.Context, phone, code string, ttl time.Duration) error
	GetCode(ctx context.Context, phone string) (string, error)
	DeleteCode(ctx context.Context, phone string) error
	IncrAttempts(ctx context.Context, phone string, ttl time.Duration) (int64, error)
	MarkVerified(ctx context.Context, phone string, ttl time.Duration) error
	IsVerified(ctx context.Context, phone string) (bool, error)
}

// CodeSender интерфейс доставки кода клиенту
type CodeSender interface {
	SendVerificationCode(ctx context.Context, phone, code string, ttl time.Duration) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
