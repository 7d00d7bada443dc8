package cancel_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/KingsBarber-BookingService/internal/api/handlers"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/appointments"
)

const (
	msgInvalidCode  = "некорректный код подтверждения"
	msgNotFound     = "запись не найдена"
	msgCannotCancel = "запись уже отменена"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/appointments/{code}
// Запись не удаляется, а переводится в статус cancelled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	appt, err := h.service.Cancel(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("DELETE /appointments/{code} - Invalid code: %q", code)
			handlers.RespondBadRequest(w, msgInvalidCode)

		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("DELETE /appointments/{code} - Appointment not found: code=%s", code)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrCannotCancel):
			h.logger.Warn("DELETE /appointments/{code} - Already cancelled: code=%s", code)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("DELETE /appointments/{code} - Failed to cancel appointment: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /appointments/{code} - Appointment cancelled successfully: id=%d", appt.ID)
	handlers.RespondJSON(w, http.StatusOK, appt)
}
