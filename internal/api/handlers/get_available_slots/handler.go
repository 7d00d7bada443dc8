package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/KingsBarber-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/KingsBarber-BookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate     = "дата обязательна"
	msgInvalidQuery    = "некорректные параметры запроса, ожидается date=YYYY-MM-DD и duration=N или service=..."
	msgInvalidInput    = "некорректные параметры поиска слотов"
	msgBarberNotFound  = "барбер не найден"
	msgServiceNotFound = "услуга не найдена"
)

type Handler struct {
	useCase  GetAvailableSlotsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/barbers/{barber}/available-slots
// Query params: date (required, YYYY-MM-DD), duration (minutes) или service (повторяемый)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barber := mux.Vars(r)["barber"]
	query := r.URL.Query()

	date := query.Get("date")
	if date == "" {
		h.logger.Warn("GET /barbers/{barber}/available-slots - Missing date: barber=%s", barber)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(barber, date, query.Get("duration"), query["service"])
	if err != nil {
		h.logger.Warn("GET /barbers/{barber}/available-slots - Invalid query: barber=%s, error=%v", barber, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrUnknownBarber):
			h.logger.Warn("GET /barbers/{barber}/available-slots - Barber not found: barber=%s", barber)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, getAvailableSlots.ErrUnknownService):
			h.logger.Warn("GET /barbers/{barber}/available-slots - Service not found: barber=%s, services=%v", barber, useCaseReq.Services)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /barbers/{barber}/available-slots - Invalid input: barber=%s, error=%v", barber, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /barbers/{barber}/available-slots - Failed to get slots: barber=%s, date=%s, error=%v", barber, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /barbers/{barber}/available-slots - Slots retrieved successfully: barber=%s, date=%s, slots_count=%d",
		result.Barber, date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.location))
}
