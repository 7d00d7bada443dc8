package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/KingsBarber-BookingService/internal/infra/storage/appointment"
	"github.com/m04kA/KingsBarber-BookingService/internal/scheduling"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/notifications"
	"github.com/m04kA/KingsBarber-BookingService/pkg/metrics"
	"github.com/m04kA/KingsBarber-BookingService/pkg/txmanager"
)

// Operation операция для метрики исходов бронирования
const Operation = "reschedule"

// UseCase use case для переноса записи на другое время
// Код подтверждения, барбер и услуги сохраняются
type UseCase struct {
	appointmentRepo AppointmentRepository
	awayDayRepo     AwayDayRepository
	guard           BookingGuard
	notifier        Notifier
	metrics         Metrics
	txManager       TransactionManager
	rules           domain.ShopRules
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	awayDayRepo AwayDayRepository,
	guard BookingGuard,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	rules domain.ShopRules,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		awayDayRepo:     awayDayRepo,
		guard:           guard,
		notifier:        notifier,
		metrics:         metrics,
		txManager:       txManager,
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

// Execute выполняет use case переноса записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	defer func() {
		uc.metrics.RecordBooking(Operation, outcomeOf(err))
	}()

	uc.logger.Info("RescheduleBooking: code=%s, start=%s", req.Code, req.StartTime.Format(domain.LocalDateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем запись по коду
	appt, err := uc.appointmentRepo.GetByCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("RescheduleBooking: appointment code=%s not found", req.Code)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get appointment code=%s: %v", req.Code, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrStorage, err)
	}

	if !appt.CanBeRescheduled() {
		uc.logger.Warn("RescheduleBooking: appointment code=%s has status %s", req.Code, appt.Status)
		return nil, ErrNotReschedulable
	}

	// 3. Проверяем новую дату
	now := uc.timeProvider.Now()
	date := uc.rules.DateOf(req.StartTime)

	if err := uc.rules.CheckBookableDate(date, now); err != nil {
		uc.logger.Warn("RescheduleBooking: date %s rejected: %v", date, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if !uc.rules.AllowPastSlotsToday && req.StartTime.Before(now) {
		uc.logger.Warn("RescheduleBooking: start %s is in the past", req.StartTime)
		return nil, fmt.Errorf("%w: start time is in the past", ErrInvalidInput)
	}
	if uc.rules.IsClosed(date) {
		uc.logger.Warn("RescheduleBooking: shop is closed on %s", date)
		return nil, ErrShopClosed
	}

	away, err := uc.awayDayRepo.IsAway(ctx, appt.Barber, date)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to check away day: %v", err)
		return nil, fmt.Errorf("%w: failed to check away day: %v", ErrStorage, err)
	}
	if away {
		uc.logger.Info("RescheduleBooking: barber %s is away on %s", appt.Barber, date)
		return nil, ErrBarberAway
	}

	filter := domain.BarberDayFilter{Barber: appt.Barber, Date: date, Location: uc.rules.Location}

	// 4. Предварительная проверка, собственная запись исключается
	existing, err := uc.appointmentRepo.ListBarberDay(ctx, filter)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrStorage, err)
	}

	decision, err := uc.guard.TryBook(appt.Barber, req.StartTime, appt.DurationMinutes, existing, &appt.ID)
	if err != nil {
		uc.logger.Warn("RescheduleBooking: guard rejected input: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !decision.Accepted {
		uc.logger.Info("RescheduleBooking: slot unavailable at %s, reason=%s, conflicting id=%d",
			req.StartTime.Format(domain.LocalDateTimeFormat), decision.Reason, decision.ConflictingID)
		return nil, rejectionError(decision)
	}

	// 5. Фиксируем перенос
	previousStart := appt.StartTime
	updated, err := uc.commit(ctx, req, filter)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: appointment id=%d moved from %s to %s",
		updated.ID, previousStart.Format(domain.LocalDateTimeFormat), updated.StartTime.Format(domain.LocalDateTimeFormat))

	// 6. Уведомляем после фиксации
	uc.notifier.Notify(ctx, notifications.KindRescheduled, updated)

	return toResponse(updated, previousStart), nil
}

func (uc *UseCase) commit(ctx context.Context, req *Request, filter domain.BarberDayFilter) (*domain.Appointment, error) {
	var (
		updated  *domain.Appointment
		decision scheduling.Decision
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Блокируем календарь барбера
		if err := uc.appointmentRepo.LockBarberCalendar(txCtx, filter.Barber); err != nil {
			return fmt.Errorf("%w: failed to lock barber calendar: %w", ErrStorage, err)
		}

		// 5.2. Перечитываем запись: её могли отменить конкурентно
		appt, err := uc.appointmentRepo.GetByCode(txCtx, req.Code)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %w", ErrStorage, err)
		}
		if !appt.CanBeRescheduled() {
			return ErrNotReschedulable
		}

		// 5.3. Окончательная проверка по записям дня
		existing, err := uc.appointmentRepo.ListBarberDay(txCtx, filter)
		if err != nil {
			return fmt.Errorf("%w: failed to list appointments: %w", ErrStorage, err)
		}

		decision, err = uc.guard.TryBook(appt.Barber, req.StartTime, appt.DurationMinutes, existing, &appt.ID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if !decision.Accepted {
			return errRejectedAtCommit
		}

		// 5.4. Обновляем время
		if err := uc.appointmentRepo.UpdateSchedule(txCtx, appt.ID, req.StartTime, appt.DurationMinutes); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrNotReschedulable
			}
			return fmt.Errorf("%w: failed to update appointment: %w", ErrStorage, err)
		}

		appt.StartTime = req.StartTime
		updated = appt
		return nil
	})

	switch {
	case err == nil:
		return updated, nil
	case errors.Is(err, errRejectedAtCommit):
		if decision.Reason == scheduling.ReasonOutsideHours {
			return nil, ErrOutsideBusinessHours
		}
		uc.logger.Warn("RescheduleBooking: race lost for %s at %s, taken by id=%d",
			filter.Barber, req.StartTime.Format(domain.LocalDateTimeFormat), decision.ConflictingID)
		return nil, fmt.Errorf("%w: conflicts with appointment id=%d", ErrRaceLost, decision.ConflictingID)
	case errors.Is(err, txmanager.ErrSerialization):
		uc.logger.Warn("RescheduleBooking: race lost for %s at %s: serialization failure",
			filter.Barber, req.StartTime.Format(domain.LocalDateTimeFormat))
		return nil, fmt.Errorf("%w: %v", ErrRaceLost, err)
	case errors.Is(err, ErrAppointmentNotFound), errors.Is(err, ErrNotReschedulable), errors.Is(err, ErrInvalidInput):
		uc.logger.Warn("RescheduleBooking: rejected at commit: %v", err)
		return nil, err
	default:
		uc.logger.Error("RescheduleBooking: transaction failed: %v", err)
		if errors.Is(err, ErrStorage) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
}

func rejectionError(d scheduling.Decision) error {
	if d.Reason == scheduling.ReasonOutsideHours {
		return ErrOutsideBusinessHours
	}
	return fmt.Errorf("%w: conflicts with appointment id=%d", ErrSlotUnavailable, d.ConflictingID)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeAccepted
	case errors.Is(err, ErrRaceLost):
		return metrics.OutcomeRaceLost
	case errors.Is(err, ErrSlotUnavailable):
		return metrics.OutcomeSlotUnavailable
	case errors.Is(err, ErrStorage):
		return metrics.OutcomeStorageError
	default:
		return metrics.OutcomeInvalid
	}
}
