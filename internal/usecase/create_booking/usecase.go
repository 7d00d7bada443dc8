package create_booking

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

// maxCodeAttempts сколько раз генерировать код при коллизии уникального индекса
const maxCodeAttempts = 5

// Операции для метрики исходов бронирования
const (
	OperationBook   = "book"
	OperationWalkIn = "walk_in"
)

// Options параметры бронирования
type Options struct {
	RequirePhoneVerification bool
	ConfirmationCodeLength   int
}

// UseCase use case для создания записи к барберу
type UseCase struct {
	appointmentRepo AppointmentRepository
	awayDayRepo     AwayDayRepository
	catalog         Catalog
	guard           BookingGuard
	verifier        PhoneVerifier
	notifier        Notifier
	metrics         Metrics
	txManager       TransactionManager
	rules           domain.ShopRules
	opts            Options
	timeProvider    TimeProvider
	newCode         func() (string, error)
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	awayDayRepo AwayDayRepository,
	catalog Catalog,
	guard BookingGuard,
	verifier PhoneVerifier,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	rules domain.ShopRules,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.ConfirmationCodeLength <= 0 {
		opts.ConfirmationCodeLength = domain.DefaultConfirmationCodeLen
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		awayDayRepo:     awayDayRepo,
		catalog:         catalog,
		guard:           guard,
		verifier:        verifier,
		notifier:        notifier,
		metrics:         metrics,
		txManager:       txManager,
		rules:           rules,
		opts:            opts,
		timeProvider:    &RealTimeProvider{},
		newCode: func() (string, error) {
			return randomCode(opts.ConfirmationCodeLength)
		},
		logger: logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания записи
// Предварительная проверка идет вне транзакции, окончательная повторяется под блокировкой календаря барбера
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	if req.Source == "" {
		req.Source = domain.SourceOnline
	}
	operation := OperationBook
	if req.Source == domain.SourceWalkIn {
		operation = OperationWalkIn
	}
	defer func() {
		uc.metrics.RecordBooking(operation, outcomeOf(err))
	}()

	uc.logger.Info("CreateBooking: barber=%s, services=%v, start=%s, source=%s",
		req.Barber, req.Services, req.StartTime.Format(domain.LocalDateTimeFormat), req.Source)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Находим барбера и считаем длительность и стоимость
	barber, ok := uc.catalog.Barber(req.Barber)
	if !ok {
		uc.logger.Warn("CreateBooking: barber %q not found", req.Barber)
		return nil, ErrUnknownBarber
	}

	quote, err := uc.catalog.Quote(barber.Name, req.Services)
	if err != nil {
		uc.logger.Warn("CreateBooking: quote failed: %v", err)
		return nil, mapQuoteError(err)
	}

	// 3. Проверяем подтверждение телефона (walk-in оформляет сотрудник)
	if req.Source == domain.SourceOnline && uc.opts.RequirePhoneVerification {
		verified, err := uc.verifier.IsVerified(ctx, req.CustomerPhone)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check phone verification: %v", err)
			return nil, fmt.Errorf("%w: failed to check phone verification: %v", ErrStorage, err)
		}
		if !verified {
			uc.logger.Warn("CreateBooking: phone %s is not verified", req.CustomerPhone)
			return nil, ErrPhoneNotVerified
		}
	}

	// 4. Проверяем дату: окно бронирования, прошедшее время, выходные салона и барбера
	now := uc.timeProvider.Now()
	date := uc.rules.DateOf(req.StartTime)

	if err := uc.rules.CheckBookableDate(date, now); err != nil {
		uc.logger.Warn("CreateBooking: date %s rejected: %v", date, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if !uc.rules.AllowPastSlotsToday && req.StartTime.Before(now) {
		uc.logger.Warn("CreateBooking: start %s is in the past", req.StartTime)
		return nil, fmt.Errorf("%w: start time is in the past", ErrInvalidInput)
	}
	if uc.rules.IsClosed(date) {
		uc.logger.Warn("CreateBooking: shop is closed on %s", date)
		return nil, ErrShopClosed
	}

	away, err := uc.awayDayRepo.IsAway(ctx, barber.Name, date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check away day: %v", err)
		return nil, fmt.Errorf("%w: failed to check away day: %v", ErrStorage, err)
	}
	if away {
		uc.logger.Info("CreateBooking: barber %s is away on %s", barber.Name, date)
		return nil, ErrBarberAway
	}

	filter := domain.BarberDayFilter{Barber: barber.Name, Date: date, Location: uc.rules.Location}

	// 5. Предварительная проверка по свежему чтению
	existing, err := uc.appointmentRepo.ListBarberDay(ctx, filter)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrStorage, err)
	}

	decision, err := uc.guard.TryBook(barber.Name, req.StartTime, quote.DurationMinutes, existing, nil)
	if err != nil {
		uc.logger.Warn("CreateBooking: guard rejected input: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !decision.Accepted {
		uc.logger.Info("CreateBooking: slot unavailable at %s, reason=%s, conflicting id=%d",
			req.StartTime.Format(domain.LocalDateTimeFormat), decision.Reason, decision.ConflictingID)
		return nil, rejectionError(decision)
	}

	draft := &domain.Appointment{
		Barber:          barber.Name,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		Services:        quote.Services,
		StartTime:       req.StartTime,
		DurationMinutes: quote.DurationMinutes,
		TotalPriceCents: quote.PriceCents,
		Notes:           req.Notes,
		Status:          domain.StatusConfirmed,
		Source:          req.Source,
	}

	// 6. Фиксируем в сериализуемой транзакции, при коллизии кода повторяем с новым
	var created *domain.Appointment
	for attempt := 1; ; attempt++ {
		code, err := uc.newCode()
		if err != nil {
			uc.logger.Error("CreateBooking: failed to generate confirmation code: %v", err)
			return nil, fmt.Errorf("%w: failed to generate confirmation code: %v", ErrStorage, err)
		}
		draft.ConfirmationCode = code

		created, err = uc.commit(ctx, filter, draft)
		if errors.Is(err, appointmentRepo.ErrDuplicateCode) && attempt < maxCodeAttempts {
			uc.logger.Warn("CreateBooking: confirmation code collision, attempt %d", attempt)
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}

	uc.logger.Info("CreateBooking: successfully created appointment id=%d code=%s", created.ID, created.ConfirmationCode)

	// 7. Уведомляем только после фиксации; сбой уведомления не отменяет запись
	uc.notifier.Notify(ctx, notifications.KindBooked, created)

	return toResponse(created), nil
}

// commit повторяет проверку под блокировкой календаря и вставляет запись
func (uc *UseCase) commit(ctx context.Context, filter domain.BarberDayFilter, draft *domain.Appointment) (*domain.Appointment, error) {
	var (
		created  *domain.Appointment
		decision scheduling.Decision
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Сериализуем брони одного барбера
		if err := uc.appointmentRepo.LockBarberCalendar(txCtx, draft.Barber); err != nil {
			return fmt.Errorf("%w: failed to lock barber calendar: %w", ErrStorage, err)
		}

		// 6.2. Перечитываем записи дня под блокировкой (FOR UPDATE)
		existing, err := uc.appointmentRepo.ListBarberDay(txCtx, filter)
		if err != nil {
			return fmt.Errorf("%w: failed to list appointments: %w", ErrStorage, err)
		}

		// 6.3. Окончательная проверка
		decision, err = uc.guard.TryBook(draft.Barber, draft.StartTime, draft.DurationMinutes, existing, nil)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if !decision.Accepted {
			return errRejectedAtCommit
		}

		// 6.4. Сохраняем запись
		created, err = uc.appointmentRepo.Create(txCtx, cloneAppointment(draft))
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrDuplicateCode) {
				return err
			}
			return fmt.Errorf("%w: failed to create appointment: %w", ErrStorage, err)
		}

		return nil
	})

	switch {
	case err == nil:
		return created, nil
	case errors.Is(err, errRejectedAtCommit):
		if decision.Reason == scheduling.ReasonOutsideHours {
			return nil, ErrOutsideBusinessHours
		}
		uc.logger.Warn("CreateBooking: race lost for %s at %s, taken by id=%d",
			draft.Barber, draft.StartTime.Format(domain.LocalDateTimeFormat), decision.ConflictingID)
		return nil, fmt.Errorf("%w: conflicts with appointment id=%d", ErrRaceLost, decision.ConflictingID)
	case errors.Is(err, txmanager.ErrSerialization):
		uc.logger.Warn("CreateBooking: race lost for %s at %s: serialization failure",
			draft.Barber, draft.StartTime.Format(domain.LocalDateTimeFormat))
		return nil, fmt.Errorf("%w: %v", ErrRaceLost, err)
	case errors.Is(err, appointmentRepo.ErrDuplicateCode), errors.Is(err, ErrInvalidInput):
		return nil, err
	default:
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		if errors.Is(err, ErrStorage) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
}

// rejectionError переводит отказ проверки в ошибку use case
func rejectionError(d scheduling.Decision) error {
	if d.Reason == scheduling.ReasonOutsideHours {
		return ErrOutsideBusinessHours
	}
	return fmt.Errorf("%w: conflicts with appointment id=%d", ErrSlotUnavailable, d.ConflictingID)
}

// outcomeOf определяет исход бронирования для метрик
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

// cloneAppointment копирует черновик, чтобы неудачная попытка не оставила в нем ID
func cloneAppointment(a *domain.Appointment) *domain.Appointment {
	c := *a
	c.Services = append([]string(nil), a.Services...)
	return &c
}
