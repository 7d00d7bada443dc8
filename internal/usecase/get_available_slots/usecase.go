package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
)

// UseCase use case для получения доступных слотов барбера
type UseCase struct {
	appointmentRepo AppointmentRepository
	awayDayRepo     AwayDayRepository
	catalog         Catalog
	scheduler       SlotScheduler
	rules           domain.ShopRules
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	awayDayRepo AwayDayRepository,
	catalog Catalog,
	scheduler SlotScheduler,
	rules domain.ShopRules,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		awayDayRepo:     awayDayRepo,
		catalog:         catalog,
		scheduler:       scheduler,
		rules:           rules,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: barber=%s, date=%s, duration=%d, services=%v",
		req.Barber, req.Date, req.DurationMinutes, req.Services)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Находим барбера в каталоге
	barber, ok := uc.catalog.Barber(req.Barber)
	if !ok {
		uc.logger.Warn("GetAvailableSlots: barber %q not found", req.Barber)
		return nil, ErrUnknownBarber
	}

	// 3. Определяем длительность
	resp := &Response{
		Date:            req.Date,
		Barber:          barber.Name,
		DurationMinutes: req.DurationMinutes,
		Slots:           []domain.Slot{},
	}
	if len(req.Services) > 0 {
		quote, err := uc.catalog.Quote(barber.Name, req.Services)
		if err != nil {
			uc.logger.Warn("GetAvailableSlots: quote failed: %v", err)
			return nil, mapQuoteError(err)
		}
		resp.DurationMinutes = quote.DurationMinutes
		resp.PriceCents = quote.PriceCents
	}

	// 4. Проверяем окно бронирования
	now := uc.timeProvider.Now()
	if err := uc.rules.CheckBookableDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date %s rejected: %v", req.Date, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// 5. Салон закрыт весь день
	if uc.rules.IsClosed(req.Date) {
		uc.logger.Info("GetAvailableSlots: shop is closed on %s", req.Date)
		resp.Closed = true
		return resp, nil
	}

	// 6. Проверяем выходной барбера
	away, err := uc.awayDayRepo.IsAway(ctx, barber.Name, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check away day for %s: %v", barber.Name, err)
		return nil, fmt.Errorf("%w: failed to check away day: %v", ErrStorage, err)
	}
	resp.AwayDay = away

	// 7. Получаем подтвержденные записи барбера на день
	var existing []*domain.Appointment
	if !away {
		existing, err = uc.appointmentRepo.ListBarberDay(ctx, domain.BarberDayFilter{
			Barber:   barber.Name,
			Date:     req.Date,
			Location: uc.rules.Location,
		})
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to list appointments for %s: %v", barber.Name, err)
			return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrStorage, err)
		}
	}

	// 8. Генерируем слоты
	slots, err := uc.scheduler.GenerateSlots(barber.Name, req.Date, resp.DurationMinutes, existing, away)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 9. Убираем уже начавшиеся слоты сегодняшнего дня
	if !uc.rules.AllowPastSlotsToday && req.Date == uc.rules.Today(now) {
		slots = dropPastSlots(slots, now)
	}

	resp.Slots = slots

	uc.logger.Info("GetAvailableSlots: found %d slots for %s on %s", len(slots), barber.Name, req.Date)

	return resp, nil
}

func mapQuoteError(err error) error {
	switch {
	case errors.Is(err, domain.ErrUnknownService):
		return fmt.Errorf("%w: %v", ErrUnknownService, err)
	case errors.Is(err, domain.ErrUnknownBarber):
		return ErrUnknownBarber
	default:
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
}
