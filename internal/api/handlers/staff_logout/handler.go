package staff_logout

import (
	"net/http"

	"github.com/m04kA/KingsBarber-BookingService/internal/api/handlers"
	"github.com/m04kA/KingsBarber-BookingService/internal/api/middleware"
)

const msgMissingSession = "сессия не найдена"

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/staff/logout
// Требует middleware.Auth
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		h.logger.Warn("POST /staff/logout - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	if err := h.service.Logout(r.Context(), sessionID); err != nil {
		h.logger.Error("POST /staff/logout - Failed to log out: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	staff, _ := middleware.GetStaff(r.Context())
	h.logger.Info("POST /staff/logout - Staff logged out: username=%s", staff.Username)
	handlers.RespondNoContent(w)
}
