package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
)

// ParseStartTime принимает RFC 3339 или локальное время салона "2006-01-02T15:04"
func ParseStartTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(domain.LocalDateTimeFormat, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("start time %q: expected RFC 3339 or %s", s, domain.LocalDateTimeFormat)
	}
	return t, nil
}
