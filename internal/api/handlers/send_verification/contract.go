package send_verification

import (
	"context"

	"github.com/m04kA/KingsBarber-BookingService/internal/service/verification/models"
)

type VerificationService interface {
	Send(ctx context.Context, req *models.SendRequest) (*models.SendResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
