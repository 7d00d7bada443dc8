package reschedule_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrAppointmentNotFound возвращается, когда запись с таким кодом не найдена
	ErrAppointmentNotFound = errors.New("reschedule_booking: appointment not found")

	// ErrNotReschedulable возвращается для отмененных записей
	ErrNotReschedulable = errors.New("reschedule_booking: appointment cannot be rescheduled")

	// ErrShopClosed возвращается, когда салон закрыт в выбранный день недели
	ErrShopClosed = errors.New("reschedule_booking: shop is closed on this date")

	// ErrSlotUnavailable возвращается, когда новое время пересекается с другой записью
	ErrSlotUnavailable = errors.New("reschedule_booking: slot is not available")

	// ErrStorage возвращается при сбоях хранилища; запись при этом не меняется
	ErrStorage = errors.New("reschedule_booking: storage failure")
)

var (
	// ErrOutsideBusinessHours возвращается, когда запись не помещается в часы работы
	ErrOutsideBusinessHours = fmt.Errorf("%w: outside business hours", ErrInvalidInput)

	// ErrBarberAway возвращается, когда у барбера выходной
	ErrBarberAway = fmt.Errorf("%w: barber is away on this date", ErrSlotUnavailable)

	// ErrRaceLost возвращается, когда предварительная проверка прошла, но слот заняли конкурентно
	ErrRaceLost = fmt.Errorf("%w: taken by a concurrent booking", ErrSlotUnavailable)
)

var errRejectedAtCommit = errors.New("reschedule_booking: rejected at commit")
