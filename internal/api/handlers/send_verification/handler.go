package send_verification

import (
	"errors"
	"net/http"

	"github.com/m04kA/KingsBarber-BookingService/internal/api/handlers"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/verification"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/verification/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPhone       = "телефон должен быть в формате E.164, например +17145550123"
	msgDeliveryFailed     = "не удалось отправить SMS с кодом, повторите попытку"
)

// SendVerificationRequest HTTP request model
type SendVerificationRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
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

// Handle POST /api/v1/verifications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SendVerificationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /verifications - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /verifications - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPhone)
		return
	}

	resp, err := h.service.Send(r.Context(), &models.SendRequest{Phone: req.Phone})
	if err != nil {
		switch {
		case errors.Is(err, verification.ErrInvalidInput):
			h.logger.Warn("POST /verifications - Invalid phone: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, verification.ErrDeliveryFailed):
			h.logger.Warn("POST /verifications - Delivery failed: phone=%s, error=%v", req.Phone, err)
			handlers.RespondError(w, http.StatusBadGateway, msgDeliveryFailed)

		default:
			h.logger.Error("POST /verifications - Failed to send code: phone=%s, error=%v", req.Phone, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /verifications - Code sent: phone=%s", resp.Phone)
	handlers.RespondJSON(w, http.StatusAccepted, resp)
}
