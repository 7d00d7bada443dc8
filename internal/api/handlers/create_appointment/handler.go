package create_appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/KingsBarber-BookingService/internal/api/handlers"
	"github.com/m04kA/KingsBarber-BookingService/internal/api/middleware"
	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	createBooking "github.com/m04kA/KingsBarber-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTime   = "некорректное время начала, ожидается RFC 3339 или YYYY-MM-DDTHH:MM"
	msgInvalidInput       = "некорректные данные записи"
	msgOutsideHours       = "запись не помещается в часы работы салона"
	msgShopClosed         = "салон закрыт в выбранный день"
	msgBarberNotFound     = "барбер не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgPhoneNotVerified   = "телефон не подтвержден, запросите код подтверждения"
	msgBarberAway         = "у барбера выходной в выбранный день"
	msgRaceLost           = "этот слот только что заняли, выберите другое время"
	msgSlotUnavailable    = "выбранное время недоступно"
	msgMissingStaff       = "требуется авторизация сотрудника"
	msgForbidden          = "нет доступа к календарю этого барбера"
)

type Handler struct {
	useCase  CreateBookingUseCase
	source   domain.AppointmentSource
	location *time.Location
	logger   Logger
}

// NewHandler создает обработчик онлайн записи
func NewHandler(useCase CreateBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		source:   domain.SourceOnline,
		location: location,
		logger:   logger,
	}
}

// NewWalkInHandler создает обработчик записи клиента, пришедшего в салон
// Требует сотрудника в контексте (middleware.Auth)
func NewWalkInHandler(useCase CreateBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		source:   domain.SourceWalkIn,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/appointments и POST /api/v1/staff/walk-ins
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST %s - Invalid request body: %v", r.URL.Path, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST %s - Validation failed: %v", r.URL.Path, err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	if h.source == domain.SourceWalkIn {
		staff, ok := middleware.GetStaff(r.Context())
		if !ok {
			h.logger.Warn("POST %s - Missing staff", r.URL.Path)
			handlers.RespondUnauthorized(w, msgMissingStaff)
			return
		}
		if !staff.CanManage(req.Barber) {
			h.logger.Warn("POST %s - Access denied: staff=%s, barber=%s", r.URL.Path, staff.Username, req.Barber)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
	}

	useCaseReq, err := req.ToUseCaseRequest(h.source, h.location)
	if err != nil {
		h.logger.Warn("POST %s - Invalid start time: %v", r.URL.Path, err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrOutsideBusinessHours):
			h.logger.Warn("POST %s - Outside business hours: barber=%s, start=%s", r.URL.Path, req.Barber, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST %s - Invalid input: barber=%s, error=%v", r.URL.Path, req.Barber, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrShopClosed):
			h.logger.Warn("POST %s - Shop closed: start=%s", r.URL.Path, req.StartTime)
			handlers.RespondBadRequest(w, msgShopClosed)

		case errors.Is(err, createBooking.ErrUnknownBarber):
			h.logger.Warn("POST %s - Barber not found: barber=%s", r.URL.Path, req.Barber)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, createBooking.ErrUnknownService):
			h.logger.Warn("POST %s - Service not found: services=%v", r.URL.Path, req.Services)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrPhoneNotVerified):
			h.logger.Warn("POST %s - Phone not verified: phone=%s", r.URL.Path, req.CustomerPhone)
			handlers.RespondForbidden(w, msgPhoneNotVerified)

		case errors.Is(err, createBooking.ErrBarberAway):
			h.logger.Info("POST %s - Barber away: barber=%s, start=%s", r.URL.Path, req.Barber, req.StartTime)
			handlers.RespondConflict(w, msgBarberAway)

		case errors.Is(err, createBooking.ErrRaceLost):
			h.logger.Warn("POST %s - Race lost: barber=%s, start=%s", r.URL.Path, req.Barber, req.StartTime)
			handlers.RespondConflict(w, msgRaceLost)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Info("POST %s - Slot unavailable: barber=%s, start=%s", r.URL.Path, req.Barber, req.StartTime)
			handlers.RespondConflict(w, msgSlotUnavailable)

		default:
			h.logger.Error("POST %s - Failed to create appointment: barber=%s, start=%s, error=%v",
				r.URL.Path, req.Barber, req.StartTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST %s - Appointment created successfully: id=%d, code=%s, barber=%s",
		r.URL.Path, result.ID, result.ConfirmationCode, result.Barber)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, h.location))
}
