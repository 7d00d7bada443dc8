package confirm_verification

import (
	"context"

	"github.com/m04kA/KingsBarber-BookingService/internal/service/verification/models"
)

type VerificationService interface {
	Confirm(ctx context.Context, req *models.ConfirmRequest) (*models.ConfirmResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
