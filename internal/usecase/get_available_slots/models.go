package get_available_slots

import (
	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
)

// Request модель запроса на получение доступных слотов
// Длительность задается либо явно, либо списком услуг
type Request struct {
	Barber          string              // Имя барбера
	Date            domain.CalendarDate // День в часовом поясе салона
	DurationMinutes int                 // Явная длительность (опционально)
	Services        []string            // Выбранные услуги (опционально)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            domain.CalendarDate
	Barber          string // Каноническое имя барбера
	DurationMinutes int
	PriceCents      int64 // Стоимость выбранных услуг, 0 если длительность задана явно
	Closed          bool  // Салон закрыт в этот день недели
	AwayDay         bool  // У барбера выходной
	Slots           []domain.Slot
}
