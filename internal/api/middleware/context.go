package middleware

import (
	"context"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
)

type contextKey int

const (
	staffKey contextKey = iota
	sessionKey
	requestIDKey
)

// WithStaff кладет аутентифицированного сотрудника в контекст
func WithStaff(ctx context.Context, staff domain.Staff, sessionID string) context.Context {
	ctx = context.WithValue(ctx, staffKey, staff)
	return context.WithValue(ctx, sessionKey, sessionID)
}

// GetStaff возвращает сотрудника из контекста
func GetStaff(ctx context.Context) (domain.Staff, bool) {
	staff, ok := ctx.Value(staffKey).(domain.Staff)
	return staff, ok
}

// GetSessionID возвращает идентификатор сессии из контекста
func GetSessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionKey).(string)
	return id, ok && id != ""
}

// GetRequestID возвращает идентификатор запроса из контекста
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
