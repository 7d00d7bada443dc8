package smsgateway

import "errors"

var (
	// ErrInvalidRecipient возвращается, когда провайдер отклонил номер или текст
	ErrInvalidRecipient = errors.New("smsgateway client: invalid recipient or message")

	// ErrUnauthorized возвращается при неверном токене провайдера
	ErrUnauthorized = errors.New("smsgateway client: unauthorized")

	// ErrRateLimited возвращается, когда провайдер ограничил частоту отправки
	ErrRateLimited = errors.New("smsgateway client: rate limited")

	// ErrUnavailable возвращается при недоступности провайдера
	ErrUnavailable = errors.New("smsgateway client: provider unavailable")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("smsgateway client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе провайдера
	ErrInvalidResponse = errors.New("smsgateway client: invalid response")
)
