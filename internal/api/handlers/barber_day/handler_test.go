package barber_day

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/KingsBarber-BookingService/internal/api/middleware"
	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/appointments"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/appointments/models"
	"github.com/m04kA/KingsBarber-BookingService/pkg/logger"
)

type fakeService struct {
	got *models.BarberDayRequest
	err error
}

func (f *fakeService) BarberDay(_ context.Context, req *models.BarberDayRequest) (*models.BarberDayResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BarberDayResponse{Barber: "Alex", Date: req.Date.String(), Appointments: []models.AppointmentResponse{}}, nil
}

func serve(ctx context.Context, svc *fakeService, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/staff/barbers/{barber}/appointments", NewHandler(svc, logger.Nop()).Handle)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil).WithContext(ctx))
	return w
}

func TestHandle(t *testing.T) {
	manager := middleware.WithStaff(context.Background(), domain.Staff{Username: "owner"}, "s1")

	t.Run("ok", func(t *testing.T) {
		svc := &fakeService{}
		w := serve(manager, svc, "/api/v1/staff/barbers/alex/appointments?date=2025-10-16&includeCancelled=true")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "alex", svc.got.Barber)
		assert.Equal(t, "2025-10-16", svc.got.Date.String())
		assert.True(t, svc.got.IncludeCancelled)
	})

	tests := []struct {
		name   string
		ctx    context.Context
		target string
		err    error
		status int
	}{
		{name: "no staff", ctx: context.Background(), target: "/api/v1/staff/barbers/alex/appointments?date=2025-10-16", status: http.StatusUnauthorized},
		{name: "missing date", ctx: manager, target: "/api/v1/staff/barbers/alex/appointments", status: http.StatusBadRequest},
		{name: "bad date", ctx: manager, target: "/api/v1/staff/barbers/alex/appointments?date=16-10-2025", status: http.StatusBadRequest},
		{name: "bad flag", ctx: manager, target: "/api/v1/staff/barbers/alex/appointments?date=2025-10-16&includeCancelled=maybe", status: http.StatusBadRequest},
		{name: "forbidden", ctx: manager, target: "/api/v1/staff/barbers/alex/appointments?date=2025-10-16", err: appointments.ErrAccessDenied, status: http.StatusForbidden},
		{name: "unknown barber", ctx: manager, target: "/api/v1/staff/barbers/zed/appointments?date=2025-10-16", err: appointments.ErrUnknownBarber, status: http.StatusNotFound},
		{name: "internal", ctx: manager, target: "/api/v1/staff/barbers/alex/appointments?date=2025-10-16", err: appointments.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(tt.ctx, &fakeService{err: tt.err}, tt.target)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
