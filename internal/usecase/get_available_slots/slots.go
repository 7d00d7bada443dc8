package get_available_slots

import (
	"time"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
)

// dropPastSlots убирает слоты, которые уже начались
// Применяется только к сегодняшнему дню, если прошлые слоты не разрешены конфигурацией
func dropPastSlots(slots []domain.Slot, now time.Time) []domain.Slot {
	kept := make([]domain.Slot, 0, len(slots))
	for _, s := range slots {
		if s.Start.Before(now) {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}
