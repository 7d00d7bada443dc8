package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/KingsBarber-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/KingsBarber-BookingService/pkg/logger"
)

type fakeUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(t *testing.T, uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	t.Helper()
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/barbers/{barber}/available-slots", NewHandler(uc, loc, logger.Nop()).Handle)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandle_Slots(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	date, err := domain.ParseCalendarDate("2025-10-16")
	require.NoError(t, err)

	start := time.Date(2025, 10, 16, 15, 15, 0, 0, loc)
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:            date,
		Barber:          "Alex",
		DurationMinutes: 30,
		Slots:           []domain.Slot{{Start: start.UTC(), End: start.Add(30 * time.Minute).UTC(), Label: "3:15 PM"}},
	}}

	w := serve(t, uc, "/api/v1/barbers/alex/available-slots?date=2025-10-16&service=Haircut&service=Shampoo")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Haircut", "Shampoo"}, uc.got.Services)
	assert.Equal(t, "alex", uc.got.Barber)

	var resp AvailableSlotsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "2025-10-16T15:15:00-07:00", resp.Slots[0].StartTime)
	assert.Equal(t, "3:15 PM", resp.Slots[0].Label)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{name: "missing date", target: "/api/v1/barbers/alex/available-slots", status: http.StatusBadRequest},
		{name: "bad duration", target: "/api/v1/barbers/alex/available-slots?date=2025-10-16&duration=half", status: http.StatusBadRequest},
		{name: "invalid input", target: "/api/v1/barbers/alex/available-slots?date=2025-10-16", err: getAvailableSlots.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "unknown barber", target: "/api/v1/barbers/zed/available-slots?date=2025-10-16&duration=30", err: getAvailableSlots.ErrUnknownBarber, status: http.StatusNotFound},
		{name: "unknown service", target: "/api/v1/barbers/alex/available-slots?date=2025-10-16&service=Perm", err: getAvailableSlots.ErrUnknownService, status: http.StatusNotFound},
		{name: "storage", target: "/api/v1/barbers/alex/available-slots?date=2025-10-16&duration=30", err: getAvailableSlots.ErrStorage, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, &fakeUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
