package add_away_days

import (
	"errors"
	"net/http"

	"github.com/m04kA/KingsBarber-BookingService/internal/api/handlers"
	"github.com/m04kA/KingsBarber-BookingService/internal/api/middleware"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/awaydays"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDates       = "некорректные даты, ожидается список YYYY-MM-DD не в прошлом"
	msgMissingStaff       = "требуется авторизация сотрудника"
	msgBarberNotFound     = "барбер не найден"
	msgForbidden          = "нет доступа к календарю этого барбера"
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

// Handle POST /api/v1/staff/away-days
// Повторная отметка того же дня не является ошибкой
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staff, ok := middleware.GetStaff(r.Context())
	if !ok {
		h.logger.Warn("POST /staff/away-days - Missing staff")
		handlers.RespondUnauthorized(w, msgMissingStaff)
		return
	}

	var req AddAwayDaysRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff/away-days - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /staff/away-days - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	serviceReq, err := req.ToServiceRequest(staff)
	if err != nil {
		h.logger.Warn("POST /staff/away-days - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	resp, err := h.service.Add(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, awaydays.ErrInvalidInput):
			h.logger.Warn("POST /staff/away-days - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDates)

		case errors.Is(err, awaydays.ErrUnknownBarber):
			h.logger.Warn("POST /staff/away-days - Barber not found: barber=%s", req.Barber)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, awaydays.ErrAccessDenied):
			h.logger.Warn("POST /staff/away-days - Access denied: staff=%s, barber=%s", staff.Username, req.Barber)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /staff/away-days - Failed to add away days: staff=%s, error=%v", staff.Username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff/away-days - Away days added: barber=%s, added=%d, skipped=%d",
		resp.Barber, len(resp.Added), len(resp.Skipped))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
