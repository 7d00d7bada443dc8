package domain

import "time"

// Slot represents a bookable start time for a given duration
type Slot struct {
	Start time.Time
	End   time.Time
	Label string // Человекочитаемое время начала, например "3:15 PM"
}

// DurationMinutes returns the slot length in minutes
func (s Slot) DurationMinutes() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}
