package list_away_days

import (
	"context"

	"github.com/m04kA/KingsBarber-BookingService/internal/service/awaydays/models"
)

type AwayDayService interface {
	List(ctx context.Context, req *models.ListRequest) (*models.AwayDayListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
