package awaydays

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/awaydays/models"
)

// Service сервис управления выходными днями барберов
type Service struct {
	awayDayRepo AwayDayRepository
	catalog     Catalog
	txManager   TransactionManager
	rules       domain.ShopRules
	now         func() time.Time
	logger      Logger
}

// NewService создает новый экземпляр сервиса выходных дней
func NewService(
	awayDayRepo AwayDayRepository,
	catalog Catalog,
	txManager TransactionManager,
	rules domain.ShopRules,
	logger Logger,
) *Service {
	return &Service{
		awayDayRepo: awayDayRepo,
		catalog:     catalog,
		txManager:   txManager,
		rules:       rules,
		now:         time.Now,
		logger:      logger,
	}
}

// List возвращает предстоящие выходные начиная с сегодняшнего дня
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.AwayDayListResponse, error) {
	s.logger.Info("List: staff=%s requests away days for barber=%q", req.Staff.Username, req.Barber)

	barber := req.Barber
	if barber == "" {
		barber = req.Staff.Barber
	}

	if barber != "" {
		resolved, err := s.resolveBarber(req.Staff, barber)
		if err != nil {
			return nil, err
		}
		barber = resolved
	}

	days, err := s.awayDayRepo.List(ctx, barber, s.rules.Today(s.now()))
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAwayDays(days), nil
}

// Add отмечает дни выходными. Повторная отметка не является ошибкой
func (s *Service) Add(ctx context.Context, req *models.AddRequest) (*models.AddResponse, error) {
	s.logger.Info("Add: staff=%s marks %d away days for barber=%q", req.Staff.Username, len(req.Dates), req.Barber)

	barber, err := s.resolveBarber(req.Staff, firstNonEmpty(req.Barber, req.Staff.Barber))
	if err != nil {
		return nil, err
	}

	if err := s.validateDates(req.Dates); err != nil {
		s.logger.Warn("Add: validation failed: %v", err)
		return nil, err
	}

	resp := &models.AddResponse{Barber: barber, Added: []string{}, Skipped: []string{}}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, date := range req.Dates {
			created, err := s.awayDayRepo.Add(txCtx, barber, date)
			if err != nil {
				return err
			}
			if created {
				resp.Added = append(resp.Added, date.String())
			} else {
				resp.Skipped = append(resp.Skipped, date.String())
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Add: repository error for barber=%s: %v", barber, err)
		return nil, fmt.Errorf("%w: Add - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Add: barber=%s added=%d skipped=%d", barber, len(resp.Added), len(resp.Skipped))
	return resp, nil
}

// Remove снимает отметку выходного дня
func (s *Service) Remove(ctx context.Context, req *models.RemoveRequest) error {
	s.logger.Info("Remove: staff=%s removes away day %s for barber=%q", req.Staff.Username, req.Date, req.Barber)

	barber, err := s.resolveBarber(req.Staff, firstNonEmpty(req.Barber, req.Staff.Barber))
	if err != nil {
		return err
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	removed, err := s.awayDayRepo.Remove(ctx, barber, req.Date)
	if err != nil {
		s.logger.Error("Remove: repository error for barber=%s: %v", barber, err)
		return fmt.Errorf("%w: Remove - repository error: %v", ErrInternal, err)
	}
	if !removed {
		s.logger.Warn("Remove: barber=%s has no away day on %s", barber, req.Date)
		return ErrAwayDayNotFound
	}

	s.logger.Info("Remove: barber=%s away day %s removed", barber, req.Date)
	return nil
}

// resolveBarber находит барбера в каталоге и проверяет права сотрудника
func (s *Service) resolveBarber(staff domain.Staff, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: barber is required", ErrInvalidInput)
	}

	barber, ok := s.catalog.Barber(name)
	if !ok {
		s.logger.Warn("resolveBarber: barber %q not found", name)
		return "", ErrUnknownBarber
	}

	if !staff.CanManage(barber.Name) {
		s.logger.Warn("resolveBarber: access denied for staff=%s to barber=%s", staff.Username, barber.Name)
		return "", ErrAccessDenied
	}

	return barber.Name, nil
}

func (s *Service) validateDates(dates []domain.CalendarDate) error {
	if len(dates) == 0 {
		return fmt.Errorf("%w: at least one date is required", ErrInvalidInput)
	}
	if len(dates) > domain.MaxAwayDaysPerRequest {
		return fmt.Errorf("%w: at most %d dates per request", ErrInvalidInput, domain.MaxAwayDaysPerRequest)
	}

	today := s.rules.Today(s.now())
	for _, d := range dates {
		if d.IsZero() {
			return fmt.Errorf("%w: date is required", ErrInvalidInput)
		}
		if d.Before(today) {
			return fmt.Errorf("%w: %s is in the past", ErrInvalidInput, d)
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
