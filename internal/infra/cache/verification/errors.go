package verification

import "errors"

var (
	// ErrCodeNotFound возвращается, когда код не отправлялся или истек
	ErrCodeNotFound = errors.New("verification.store: code not found")

	// ErrStore возвращается при ошибках redis
	ErrStore = errors.New("verification.store: redis error")
)
