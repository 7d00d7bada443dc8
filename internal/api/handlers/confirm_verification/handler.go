package confirm_verification

import (
	"errors"
	"net/http"

	"github.com/m04kA/KingsBarber-BookingService/internal/api/handlers"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/verification"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/verification/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCode        = "неверный код подтверждения"
	msgCodeExpired        = "код истек или не запрашивался"
	msgTooManyAttempts    = "слишком много попыток, запросите новый код"
)

// ConfirmVerificationRequest HTTP request model
type ConfirmVerificationRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
	Code  string `json:"code" validate:"required,numeric,max=10"`
}

type Handler struct {
	service VerificationService
	logger  Logger
}

func NewHandler(service VerificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/verifications/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ConfirmVerificationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /verifications/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /verifications/confirm - Validation failed: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	resp, err := h.service.Confirm(r.Context(), &models.ConfirmRequest{Phone: req.Phone, Code: req.Code})
	if err != nil {
		switch {
		case errors.Is(err, verification.ErrInvalidInput):
			h.logger.Warn("POST /verifications/confirm - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, verification.ErrInvalidCode):
			h.logger.Warn("POST /verifications/confirm - Wrong code: phone=%s", req.Phone)
			handlers.RespondBadRequest(w, msgInvalidCode)

		case errors.Is(err, verification.ErrCodeExpired):
			h.logger.Warn("POST /verifications/confirm - Code expired: phone=%s", req.Phone)
			handlers.RespondError(w, http.StatusGone, msgCodeExpired)

		case errors.Is(err, verification.ErrTooManyAttempts):
			h.logger.Warn("POST /verifications/confirm - Too many attempts: phone=%s", req.Phone)
			handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyAttempts)

		default:
			h.logger.Error("POST /verifications/confirm - Failed to confirm: phone=%s, error=%v", req.Phone, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /verifications/confirm - Phone verified: phone=%s", resp.Phone)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
