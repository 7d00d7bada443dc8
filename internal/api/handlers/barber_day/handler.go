package barber_day

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/KingsBarber-BookingService/internal/api/handlers"
	"github.com/m04kA/KingsBarber-BookingService/internal/api/middleware"
	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/appointments"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/appointments/models"
)

const (
	msgMissingDate    = "дата обязательна"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFlag    = "includeCancelled должен быть true или false"
	msgMissingStaff   = "требуется авторизация сотрудника"
	msgBarberNotFound = "барбер не найден"
	msgForbidden      = "нет доступа к календарю этого барбера"
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

// Handle GET /api/v1/staff/barbers/{barber}/appointments
// Query params: date (required, YYYY-MM-DD), includeCancelled (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staff, ok := middleware.GetStaff(r.Context())
	if !ok {
		h.logger.Warn("GET /staff/barbers/{barber}/appointments - Missing staff")
		handlers.RespondUnauthorized(w, msgMissingStaff)
		return
	}

	barber := mux.Vars(r)["barber"]
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /staff/barbers/{barber}/appointments - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := domain.ParseCalendarDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /staff/barbers/{barber}/appointments - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	includeCancelled := false
	if s := query.Get("includeCancelled"); s != "" {
		includeCancelled, err = strconv.ParseBool(s)
		if err != nil {
			h.logger.Warn("GET /staff/barbers/{barber}/appointments - Invalid includeCancelled: %q", s)
			handlers.RespondBadRequest(w, msgInvalidFlag)
			return
		}
	}

	resp, err := h.service.BarberDay(r.Context(), &models.BarberDayRequest{
		Staff:            staff,
		Barber:           barber,
		Date:             date,
		IncludeCancelled: includeCancelled,
	})
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrUnknownBarber):
			h.logger.Warn("GET /staff/barbers/{barber}/appointments - Barber not found: barber=%s", barber)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /staff/barbers/{barber}/appointments - Access denied: staff=%s, barber=%s", staff.Username, barber)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /staff/barbers/{barber}/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /staff/barbers/{barber}/appointments - Failed to get day: barber=%s, date=%s, error=%v", barber, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/barbers/{barber}/appointments - Day retrieved: barber=%s, date=%s, count=%d",
		resp.Barber, resp.Date, len(resp.Appointments))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
