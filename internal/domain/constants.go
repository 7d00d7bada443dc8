package domain

// Default shop configuration values
const (
	DefaultOpenTime            = "11:00"
	DefaultCloseTime           = "20:00"
	DefaultGranularityMinutes  = 15
	DefaultBufferMinutes       = 5
	DefaultBookingHorizonDays  = 60
	DefaultTimezone            = "America/Los_Angeles"
	DefaultConfirmationCodeLen = 8
)

// Business validation constants
const (
	MaxAppointmentMinutes = 480 // 8 hours
	MaxNotesLength        = 500
	MaxCustomerNameLength = 100
	MaxServicesPerBooking = 10
	MaxAwayDaysPerRequest = 60
)

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	LabelFormat = "3:04 PM"
	// LocalDateTimeFormat время без зоны, интерпретируется в часовом поясе салона
	LocalDateTimeFormat = "2006-01-02T15:04"
)
