package domain

import "errors"

var (
	ErrInvalidDate           = errors.New("domain: invalid calendar date")
	ErrInvalidCatalog        = errors.New("domain: invalid catalog")
	ErrUnknownBarber         = errors.New("domain: unknown barber")
	ErrUnknownService        = errors.New("domain: unknown service")
	ErrDuplicateService      = errors.New("domain: service selected more than once")
	ErrEmptyServiceSelection = errors.New("domain: no services selected")
	ErrDateInPast            = errors.New("domain: date is in the past")
	ErrDateBeyondHorizon     = errors.New("domain: date is beyond the booking horizon")
)
