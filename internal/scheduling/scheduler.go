// Package scheduling implements slot generation and booking conflict detection
// over snapshots of a barber's calendar. Everything here is pure: no I/O, no clock,
// no shared mutable state.
package scheduling

import (
	"fmt"
	"time"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
)

// Config holds the scheduling knobs supplied by the application
type Config struct {
	Hours              BusinessHours
	GranularityMinutes int // Шаг, с которым генерируются кандидаты
	BufferMinutes      int // Минимальный зазор между соседними записями одного барбера
	Location           *time.Location
}

// Validate checks the configuration
func (c Config) Validate() error {
	if err := c.Hours.Validate(); err != nil {
		return err
	}
	if c.GranularityMinutes <= 0 {
		return fmt.Errorf("%w: granularity must be positive", ErrInvalidConfig)
	}
	if c.BufferMinutes < 0 {
		return fmt.Errorf("%w: buffer must be non-negative", ErrInvalidConfig)
	}
	if c.Location == nil {
		return fmt.Errorf("%w: location is required", ErrInvalidConfig)
	}
	return nil
}

// checkDuration отклоняет длительности, которые не помещаются в рабочий день
func (c Config) checkDuration(durationMinutes int) error {
	if durationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if span := c.Hours.SpanMinutes(); durationMinutes > span {
		return fmt.Errorf("%w: %d minutes exceeds business day of %d", ErrInvalidDuration, durationMinutes, span)
	}
	return nil
}

func (c Config) buffer() time.Duration {
	return time.Duration(c.BufferMinutes) * time.Minute
}

// Scheduler computes bookable start times for a barber's day
type Scheduler struct {
	cfg Config
}

// NewScheduler создает новый экземпляр планировщика слотов
func NewScheduler(cfg Config) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Scheduler{cfg: cfg}, nil
}

// Config returns the scheduler configuration
func (s *Scheduler) Config() Config {
	return s.cfg
}

// GenerateSlots returns the chronologically ordered start times on date at which a booking
// of durationMinutes fits within business hours without conflicting with existing.
// durationMinutes must be positive; on a working day it must also fit in the business day.
//
// existing must hold the barber's Confirmed appointments for the date; records of other barbers
// and cancelled records are ignored. No "is this in the past" filtering is done here.
func (s *Scheduler) GenerateSlots(
	barber string,
	date domain.CalendarDate,
	durationMinutes int,
	existing []*domain.Appointment,
	isAwayDay bool,
) ([]domain.Slot, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if date.IsZero() {
		return nil, ErrInvalidDate
	}

	// Шаг 1: в выходной день барбера слотов нет независимо от длительности и записей
	if isAwayDay {
		return []domain.Slot{}, nil
	}

	if err := s.cfg.checkDuration(durationMinutes); err != nil {
		return nil, err
	}

	openAt, closeAt := s.cfg.Hours.Bounds(date, s.cfg.Location)
	busy := busyIntervals(barber, existing, s.cfg.buffer())
	step := time.Duration(s.cfg.GranularityMinutes) * time.Minute

	slots := make([]domain.Slot, 0)

	// Шаг 2: перебираем кандидатов с фиксированным шагом от открытия до закрытия
	for start := openAt; start.Before(closeAt); start = start.Add(step) {
		candidate := NewInterval(start, durationMinutes)

		// Услуга должна закончиться до закрытия; неполные слоты отбрасываются, а не обрезаются
		if candidate.End.After(closeAt) {
			break
		}

		if overlapsAny(candidate, busy) {
			continue
		}

		slots = append(slots, domain.Slot{
			Start: candidate.Start,
			End:   candidate.End,
			Label: candidate.Start.In(s.cfg.Location).Format(domain.LabelFormat),
		})
	}

	return slots, nil
}

// overlapsAny проверяет кандидата против уже расширенных буфером интервалов
func overlapsAny(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		if !b.Start.Before(candidate.End) {
			// busy отсортированы по началу: дальше пересечений быть не может
			return false
		}
		if b.Overlaps(candidate) {
			return true
		}
	}
	return false
}
