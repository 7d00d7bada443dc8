package list_away_days

import (
	"errors"
	"net/http"

	"github.com/m04kA/KingsBarber-BookingService/internal/api/handlers"
	"github.com/m04kA/KingsBarber-BookingService/internal/api/middleware"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/awaydays"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/awaydays/models"
)

const (
	msgMissingStaff   = "требуется авторизация сотрудника"
	msgBarberNotFound = "барбер не найден"
	msgForbidden      = "нет доступа к календарю этого барбера"
)

type Handler struct {
	service AwayDayService
	logger  Logger
}

func NewHandler(service AwayDayService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/away-days
// Query params: barber (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staff, ok := middleware.GetStaff(r.Context())
	if !ok {
		h.logger.Warn("GET /staff/away-days - Missing staff")
		handlers.RespondUnauthorized(w, msgMissingStaff)
		return
	}

	barber := r.URL.Query().Get("barber")
	resp, err := h.service.List(r.Context(), &models.ListRequest{Staff: staff, Barber: barber})
	if err != nil {
		switch {
		case errors.Is(err, awaydays.ErrUnknownBarber):
			h.logger.Warn("GET /staff/away-days - Barber not found: barber=%s", barber)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, awaydays.ErrAccessDenied):
			h.logger.Warn("GET /staff/away-days - Access denied: staff=%s, barber=%s", staff.Username, barber)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /staff/away-days - Failed to list away days: staff=%s, error=%v", staff.Username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/away-days - Away days retrieved: staff=%s, count=%d", staff.Username, len(resp.AwayDays))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
