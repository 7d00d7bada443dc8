package domain

import "time"

// AwayDay marks a date on which a barber accepts no appointments at all
type AwayDay struct {
	ID        int64
	Barber    string
	Date      CalendarDate
	CreatedAt time.Time
}
