package confirm_verification

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/KingsBarber-BookingService/internal/service/verification"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/verification/models"
	"github.com/m04kA/KingsBarber-BookingService/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) Confirm(_ context.Context, req *models.ConfirmRequest) (*models.ConfirmResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ConfirmResponse{Phone: req.Phone, Verified: true}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "verified", body: `{"phone":"+17145550123","code":"123456"}`, status: http.StatusOK},
		{name: "wrong code", body: `{"phone":"+17145550123","code":"000000"}`, err: verification.ErrInvalidCode, status: http.StatusBadRequest},
		{name: "expired", body: `{"phone":"+17145550123","code":"123456"}`, err: verification.ErrCodeExpired, status: http.StatusGone},
		{name: "too many attempts", body: `{"phone":"+17145550123","code":"123456"}`, err: verification.ErrTooManyAttempts, status: http.StatusTooManyRequests},
		{name: "store failure", body: `{"phone":"+17145550123","code":"123456"}`, err: errors.New("redis down"), status: http.StatusInternalServerError},
		{name: "letters in code", body: `{"phone":"+17145550123","code":"12ab56"}`, status: http.StatusBadRequest},
		{name: "missing phone", body: `{"code":"123456"}`, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, logger.Nop())
			w := httptest.NewRecorder()
			h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/verifications/confirm", strings.NewReader(tt.body)))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
