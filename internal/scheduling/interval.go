package scheduling

import (
	"sort"
	"time"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
)

// Interval is a half-open time interval [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// maxIntervalMinutes предел длительности интервала; более длинные записи журнала обрезаются до суток
const maxIntervalMinutes = 24 * 60

// NewInterval builds [start, start+durationMinutes)
// Durations above one day are clamped to one day so the end never overflows.
func NewInterval(start time.Time, durationMinutes int) Interval {
	if durationMinutes > maxIntervalMinutes {
		durationMinutes = maxIntervalMinutes
	}
	return Interval{Start: start, End: start.Add(time.Duration(durationMinutes) * time.Minute)}
}

// Overlaps reports whether two half-open intervals intersect
// Интервалы, которые только касаются границами, не пересекаются
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Widen extends the interval by buffer on both ends
func (i Interval) Widen(buffer time.Duration) Interval {
	return Interval{Start: i.Start.Add(-buffer), End: i.End.Add(buffer)}
}

// Conflicts reports whether candidate overlaps existing after widening existing by buffer
// Это единственная реализация проверки пересечения: её используют и Scheduler, и Guard
func Conflicts(existing, candidate Interval, buffer time.Duration) bool {
	return existing.Widen(buffer).Overlaps(candidate)
}

// firstConflict возвращает самую раннюю активную запись барбера, конфликтующую с candidate
// Записи других барберов, отменённые записи и запись excludeID игнорируются
func firstConflict(
	barber string,
	candidate Interval,
	existing []*domain.Appointment,
	buffer time.Duration,
	excludeID *int64,
) *domain.Appointment {
	var found *domain.Appointment

	for _, appt := range existing {
		if appt == nil || !appt.IsActive() || appt.Barber != barber {
			continue
		}
		if excludeID != nil && appt.ID == *excludeID {
			continue
		}
		if !Conflicts(NewInterval(appt.StartTime, appt.DurationMinutes), candidate, buffer) {
			continue
		}
		if found == nil || appt.StartTime.Before(found.StartTime) ||
			(appt.StartTime.Equal(found.StartTime) && appt.ID < found.ID) {
			found = appt
		}
	}

	return found
}

// busyIntervals возвращает расширенные буфером интервалы активных записей барбера по возрастанию начала
func busyIntervals(barber string, existing []*domain.Appointment, buffer time.Duration) []Interval {
	busy := make([]Interval, 0, len(existing))
	for _, appt := range existing {
		if appt == nil || !appt.IsActive() || appt.Barber != barber {
			continue
		}
		busy = append(busy, NewInterval(appt.StartTime, appt.DurationMinutes).Widen(buffer))
	}
	sort.Slice(busy, func(a, b int) bool {
		return busy[a].Start.Before(busy[b].Start)
	})
	return busy
}
