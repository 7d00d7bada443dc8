package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/KingsBarber-BookingService/internal/infra/storage/appointment"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/appointments/models"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/notifications"
)

// Service сервис для работы с записями по коду подтверждения и расписанием барберов
type Service struct {
	appointmentRepo AppointmentRepository
	catalog         Catalog
	notifier        Notifier
	txManager       TransactionManager
	location        *time.Location
	now             func() time.Time
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	catalog Catalog,
	notifier Notifier,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		catalog:         catalog,
		notifier:        notifier,
		txManager:       txManager,
		location:        location,
		now:             time.Now,
		logger:          logger,
	}
}

// GetByCode получает запись по коду подтверждения
func (s *Service) GetByCode(ctx context.Context, code string) (*models.AppointmentResponse, error) {
	code = normalizeCode(code)
	s.logger.Info("GetByCode: fetching appointment code=%s", code)

	if code == "" {
		return nil, fmt.Errorf("%w: confirmation code is required", ErrInvalidInput)
	}

	appt, err := s.appointmentRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByCode: appointment code=%s not found", code)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByCode: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: GetByCode - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt, s.location), nil
}

// Cancel отменяет запись по коду подтверждения
// Запись не удаляется, а переводится в статус cancelled и освобождает время барбера
func (s *Service) Cancel(ctx context.Context, code string) (*models.AppointmentResponse, error) {
	code = normalizeCode(code)
	s.logger.Info("Cancel: cancelling appointment code=%s", code)

	if code == "" {
		return nil, fmt.Errorf("%w: confirmation code is required", ErrInvalidInput)
	}

	var cancelled *domain.Appointment

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Внутри транзакции строка блокируется (FOR UPDATE)
		appt, err := s.appointmentRepo.GetByCode(txCtx, code)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: Cancel - get appointment: %v", ErrInternal, err)
		}

		if !appt.CanBeCancelled() {
			return ErrCannotCancel
		}

		if err := s.appointmentRepo.Cancel(txCtx, appt.ID); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrCannotCancel
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		now := s.now()
		appt.Status = domain.StatusCancelled
		appt.CancelledAt = &now
		cancelled = appt
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound), errors.Is(err, ErrCannotCancel):
			s.logger.Warn("Cancel: appointment code=%s: %v", code, err)
		default:
			s.logger.Error("Cancel: failed for code=%s: %v", code, err)
			if !errors.Is(err, ErrInternal) {
				err = fmt.Errorf("%w: Cancel - transaction: %v", ErrInternal, err)
			}
		}
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", cancelled.ID)

	s.notifier.Notify(ctx, notifications.KindCancelled, cancelled)

	return models.FromDomainAppointment(cancelled, s.location), nil
}

// BarberDay возвращает расписание барбера на день для сотрудников салона
// Барбер видит только свой календарь, менеджер видит все
func (s *Service) BarberDay(ctx context.Context, req *models.BarberDayRequest) (*models.BarberDayResponse, error) {
	s.logger.Info("BarberDay: staff=%s requests barber=%s date=%s", req.Staff.Username, req.Barber, req.Date)

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	barber, ok := s.catalog.Barber(req.Barber)
	if !ok {
		s.logger.Warn("BarberDay: barber %q not found", req.Barber)
		return nil, ErrUnknownBarber
	}

	if !req.Staff.CanManage(barber.Name) {
		s.logger.Warn("BarberDay: access denied for staff=%s to barber=%s", req.Staff.Username, barber.Name)
		return nil, ErrAccessDenied
	}

	appts, err := s.appointmentRepo.ListBarberDay(ctx, domain.BarberDayFilter{
		Barber:          barber.Name,
		Date:            req.Date,
		Location:        s.location,
		IncludeInactive: req.IncludeCancelled,
	})
	if err != nil {
		s.logger.Error("BarberDay: repository error for barber=%s: %v", barber.Name, err)
		return nil, fmt.Errorf("%w: BarberDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("BarberDay: fetched %d appointments for barber=%s", len(appts), barber.Name)
	return models.FromDomainBarberDay(barber.Name, req.Date, appts, s.location), nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
