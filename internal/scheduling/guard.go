package scheduling

import (
	"time"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
)

// RejectReason explains why a proposed booking was rejected
type RejectReason string

const (
	ReasonNone         RejectReason = ""
	ReasonConflict     RejectReason = "conflict"
	ReasonOutsideHours RejectReason = "outside_business_hours"
)

// Decision is the outcome of a booking attempt
// Отказ не является ошибкой: это ожидаемый результат "выберите другое время"
type Decision struct {
	Accepted      bool
	Reason        RejectReason
	ConflictingID int64 // ID первой конфликтующей записи (только для ReasonConflict)
}

// Accepted returns an accepting decision
func Accepted() Decision {
	return Decision{Accepted: true}
}

// Guard performs the authoritative conflict check at commit time
type Guard struct {
	cfg Config
}

// NewGuard создает новый экземпляр проверки конфликтов
func NewGuard(cfg Config) (*Guard, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Guard{cfg: cfg}, nil
}

// TryBook checks [proposedStart, proposedStart+durationMinutes) against existing.
//
// existing must be the barber's current Confirmed appointments, read immediately before the insert.
// excludeID lets a reschedule skip the appointment's own prior booking.
// durationMinutes must be positive and no longer than the business day.
//
// When several appointments conflict, ConflictingID names the one that starts earliest
// (ties broken by the lower ID), regardless of its position in existing.
func (g *Guard) TryBook(
	barber string,
	proposedStart time.Time,
	durationMinutes int,
	existing []*domain.Appointment,
	excludeID *int64,
) (Decision, error) {
	if err := g.cfg.checkDuration(durationMinutes); err != nil {
		return Decision{}, err
	}
	if proposedStart.IsZero() {
		return Decision{}, ErrInvalidDate
	}

	candidate := NewInterval(proposedStart, durationMinutes)

	if !g.cfg.Hours.Contains(candidate, g.cfg.Location) {
		return Decision{Reason: ReasonOutsideHours}, nil
	}

	if conflict := firstConflict(barber, candidate, existing, g.cfg.buffer(), excludeID); conflict != nil {
		return Decision{Reason: ReasonConflict, ConflictingID: conflict.ID}, nil
	}

	return Accepted(), nil
}
