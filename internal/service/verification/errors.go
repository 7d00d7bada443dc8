package verification

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном телефоне или коде
	ErrInvalidInput = errors.New("verification: invalid input data")

	// ErrCodeExpired возвращается, когда код не запрашивался или истек
	ErrCodeExpired = errors.New("verification: code expired or not requested")

	// ErrInvalidCode возвращается при неверном коде
	ErrInvalidCode = errors.New("verification: invalid code")

	// ErrTooManyAttempts возвращается, когда исчерпан лимит попыток ввода
	ErrTooManyAttempts = errors.New("verification: too many attempts")

	// ErrDeliveryFailed возвращается, когда SMS с кодом не удалось отправить
	ErrDeliveryFailed = errors.New("verification: code delivery failed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("verification: internal error")
)
