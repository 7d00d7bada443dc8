package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrUnknownBarber возвращается, когда барбер не найден в каталоге
	ErrUnknownBarber = errors.New("create_booking: unknown barber")

	// ErrUnknownService возвращается, когда услуга не найдена в каталоге
	ErrUnknownService = errors.New("create_booking: unknown service")

	// ErrShopClosed возвращается, когда салон закрыт в выбранный день недели
	ErrShopClosed = errors.New("create_booking: shop is closed on this date")

	// ErrPhoneNotVerified возвращается, когда телефон клиента не подтвержден кодом
	ErrPhoneNotVerified = errors.New("create_booking: phone number is not verified")

	// ErrSlotUnavailable возвращается, когда выбранное время пересекается с другой записью
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrStorage возвращается при сбоях хранилища; запись при этом не создается
	ErrStorage = errors.New("create_booking: storage failure")
)

var (
	// ErrOutsideBusinessHours возвращается, когда запись не помещается в часы работы
	ErrOutsideBusinessHours = fmt.Errorf("%w: outside business hours", ErrInvalidInput)

	// ErrBarberAway возвращается, когда у барбера выходной
	ErrBarberAway = fmt.Errorf("%w: barber is away on this date", ErrSlotUnavailable)

	// ErrRaceLost возвращается, когда предварительная проверка прошла, но слот заняли конкурентно
	ErrRaceLost = fmt.Errorf("%w: taken by a concurrent booking", ErrSlotUnavailable)
)

// errRejectedAtCommit сигнализирует об отказе проверки внутри транзакции
var errRejectedAtCommit = errors.New("create_booking: rejected at commit")
