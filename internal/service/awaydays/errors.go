package awaydays

import "errors"

var (
	// ErrAwayDayNotFound возвращается, когда выходной не отмечен
	ErrAwayDayNotFound = errors.New("awaydays: away day not found")

	// ErrUnknownBarber возвращается, когда барбер не найден в каталоге
	ErrUnknownBarber = errors.New("awaydays: unknown barber")

	// ErrAccessDenied возвращается, когда сотрудник не может управлять календарем барбера
	ErrAccessDenied = errors.New("awaydays: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("awaydays: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("awaydays: internal error")
)
