package add_away_days

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/KingsBarber-BookingService/internal/api/middleware"
	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/awaydays"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/awaydays/models"
	"github.com/m04kA/KingsBarber-BookingService/pkg/logger"
)

type fakeService struct {
	got *models.AddRequest
	err error
}

func (f *fakeService) Add(_ context.Context, req *models.AddRequest) (*models.AddResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AddResponse{Barber: "Alex", Added: []string{"2025-10-20"}, Skipped: []string{}}, nil
}

var alex = domain.Staff{Username: "alex", Barber: "Alex"}

func serve(ctx context.Context, svc *fakeService, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/staff/away-days", strings.NewReader(body)).WithContext(ctx)
	w := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(w, r)
	return w
}

func TestHandle_Added(t *testing.T) {
	svc := &fakeService{}
	ctx := middleware.WithStaff(context.Background(), alex, "s1")

	w := serve(ctx, svc, `{"dates":["2025-10-20","2025-10-21"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, alex, svc.got.Staff)
	require.Len(t, svc.got.Dates, 2)
	assert.Equal(t, "2025-10-21", svc.got.Dates[1].String())
}

func TestHandle_Rejections(t *testing.T) {
	staffCtx := middleware.WithStaff(context.Background(), alex, "s1")

	tests := []struct {
		name   string
		ctx    context.Context
		body   string
		err    error
		status int
	}{
		{name: "no staff", ctx: context.Background(), body: `{"dates":["2025-10-20"]}`, status: http.StatusUnauthorized},
		{name: "empty dates", ctx: staffCtx, body: `{"dates":[]}`, status: http.StatusBadRequest},
		{name: "bad date", ctx: staffCtx, body: `{"dates":["20/10/2025"]}`, status: http.StatusBadRequest},
		{name: "past date", ctx: staffCtx, body: `{"dates":["2020-01-01"]}`, err: awaydays.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "other barber", ctx: staffCtx, body: `{"barber":"Moe","dates":["2025-10-20"]}`, err: awaydays.ErrAccessDenied, status: http.StatusForbidden},
		{name: "unknown barber", ctx: staffCtx, body: `{"barber":"Zed","dates":["2025-10-20"]}`, err: awaydays.ErrUnknownBarber, status: http.StatusNotFound},
		{name: "internal", ctx: staffCtx, body: `{"dates":["2025-10-20"]}`, err: awaydays.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(tt.ctx, &fakeService{err: tt.err}, tt.body)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
