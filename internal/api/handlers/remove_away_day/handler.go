package remove_away_day

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/KingsBarber-BookingService/internal/api/handlers"
	"github.com/m04kA/KingsBarber-BookingService/internal/api/middleware"
	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/awaydays"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/awaydays/models"
)

const (
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingStaff   = "требуется авторизация сотрудника"
	msgNotFound       = "выходной не найден"
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

// Handle DELETE /api/v1/staff/away-days/{date}
// Query params: barber (опционально, для менеджера)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staff, ok := middleware.GetStaff(r.Context())
	if !ok {
		h.logger.Warn("DELETE /staff/away-days/{date} - Missing staff")
		handlers.RespondUnauthorized(w, msgMissingStaff)
		return
	}

	date, err := domain.ParseCalendarDate(mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("DELETE /staff/away-days/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	barber := r.URL.Query().Get("barber")
	err = h.service.Remove(r.Context(), &models.RemoveRequest{Staff: staff, Barber: barber, Date: date})
	if err != nil {
		switch {
		case errors.Is(err, awaydays.ErrAwayDayNotFound):
			h.logger.Warn("DELETE /staff/away-days/{date} - Away day not found: barber=%s, date=%s", barber, date)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, awaydays.ErrUnknownBarber):
			h.logger.Warn("DELETE /staff/away-days/{date} - Barber not found: barber=%s", barber)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, awaydays.ErrAccessDenied):
			h.logger.Warn("DELETE /staff/away-days/{date} - Access denied: staff=%s, barber=%s", staff.Username, barber)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, awaydays.ErrInvalidInput):
			h.logger.Warn("DELETE /staff/away-days/{date} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("DELETE /staff/away-days/{date} - Failed to remove away day: staff=%s, error=%v", staff.Username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /staff/away-days/{date} - Away day removed: staff=%s, date=%s", staff.Username, date)
	handlers.RespondNoContent(w)
}
