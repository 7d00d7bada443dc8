package scheduling

import "errors"

var (
	// ErrInvalidConfig возвращается при некорректных часах работы, шаге или буфере
	ErrInvalidConfig = errors.New("scheduling: invalid configuration")

	// ErrInvalidDuration возвращается при неположительной длительности или длительности больше рабочего дня
	ErrInvalidDuration = errors.New("scheduling: invalid duration")

	// ErrInvalidDate возвращается при пустой дате
	ErrInvalidDate = errors.New("scheduling: date is required")
)
