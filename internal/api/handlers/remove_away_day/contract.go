package remove_away_day

import (
	"context"

	"github.com/m04kA/KingsBarber-BookingService/internal/service/awaydays/models"
)

type AwayDayService interface {
	Remove(ctx context.Context, req *models.RemoveRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
