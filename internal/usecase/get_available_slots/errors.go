package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrUnknownBarber возвращается, когда барбер не найден в каталоге
	ErrUnknownBarber = errors.New("get_available_slots: unknown barber")

	// ErrUnknownService возвращается, когда услуга не найдена в каталоге
	ErrUnknownService = errors.New("get_available_slots: unknown service")

	// ErrStorage возвращается, когда не удалось прочитать календарь барбера
	// Неудачное чтение никогда не превращается в пустое расписание
	ErrStorage = errors.New("get_available_slots: storage failure")
)
