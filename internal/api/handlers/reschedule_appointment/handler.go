package reschedule_appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/KingsBarber-BookingService/internal/api/handlers"
	rescheduleBooking "github.com/m04kA/KingsBarber-BookingService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTime   = "некорректное время начала, ожидается RFC 3339 или YYYY-MM-DDTHH:MM"
	msgInvalidInput       = "некорректные данные переноса"
	msgOutsideHours       = "запись не помещается в часы работы салона"
	msgShopClosed         = "салон закрыт в выбранный день"
	msgNotFound           = "запись не найдена"
	msgNotReschedulable   = "отмененную запись нельзя перенести"
	msgBarberAway         = "у барбера выходной в выбранный день"
	msgRaceLost           = "этот слот только что заняли, выберите другое время"
	msgSlotUnavailable    = "выбранное время недоступно"
)

type Handler struct {
	useCase  RescheduleBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase RescheduleBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle PUT /api/v1/appointments/{code}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/{code}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PUT /appointments/{code}/reschedule - Validation failed: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(code, h.location)
	if err != nil {
		h.logger.Warn("PUT /appointments/{code}/reschedule - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrOutsideBusinessHours):
			h.logger.Warn("PUT /appointments/{code}/reschedule - Outside business hours: code=%s, start=%s", code, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PUT /appointments/{code}/reschedule - Invalid input: code=%s, error=%v", code, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, rescheduleBooking.ErrShopClosed):
			h.logger.Warn("PUT /appointments/{code}/reschedule - Shop closed: code=%s, start=%s", code, req.StartTime)
			handlers.RespondBadRequest(w, msgShopClosed)

		case errors.Is(err, rescheduleBooking.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointments/{code}/reschedule - Appointment not found: code=%s", code)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrNotReschedulable):
			h.logger.Warn("PUT /appointments/{code}/reschedule - Not reschedulable: code=%s", code)
			handlers.RespondConflict(w, msgNotReschedulable)

		case errors.Is(err, rescheduleBooking.ErrBarberAway):
			h.logger.Info("PUT /appointments/{code}/reschedule - Barber away: code=%s, start=%s", code, req.StartTime)
			handlers.RespondConflict(w, msgBarberAway)

		case errors.Is(err, rescheduleBooking.ErrRaceLost):
			h.logger.Warn("PUT /appointments/{code}/reschedule - Race lost: code=%s, start=%s", code, req.StartTime)
			handlers.RespondConflict(w, msgRaceLost)

		case errors.Is(err, rescheduleBooking.ErrSlotUnavailable):
			h.logger.Info("PUT /appointments/{code}/reschedule - Slot unavailable: code=%s, start=%s", code, req.StartTime)
			handlers.RespondConflict(w, msgSlotUnavailable)

		default:
			h.logger.Error("PUT /appointments/{code}/reschedule - Failed to reschedule: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/{code}/reschedule - Appointment rescheduled successfully: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.location))
}
