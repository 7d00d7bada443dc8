package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/auth"
	"github.com/m04kA/KingsBarber-BookingService/pkg/logger"
)

type fakeAuthenticator struct {
	sessions map[string]domain.Staff
	err      error
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, id string) (domain.Staff, error) {
	if f.err != nil {
		return domain.Staff{}, f.err
	}
	staff, ok := f.sessions[id]
	if !ok {
		return domain.Staff{}, auth.ErrUnauthorized
	}
	return staff, nil
}

type recordedRequest struct {
	method, path string
	status       int
}

type fakeMetrics struct {
	requests []recordedRequest
}

func (f *fakeMetrics) RecordHTTPRequest(method, path string, status int, _ time.Duration) {
	f.requests = append(f.requests, recordedRequest{method, path, status})
}

func staffEcho(w http.ResponseWriter, r *http.Request) {
	staff, ok := GetStaff(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	_, _ = w.Write([]byte(staff.Username))
}

func TestAuth(t *testing.T) {
	authn := &fakeAuthenticator{sessions: map[string]domain.Staff{
		"good": {Username: "alex", Barber: "Alex"},
	}}
	h := Auth(authn, logger.Nop())(http.HandlerFunc(staffEcho))

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "valid session", header: "Bearer good", status: http.StatusOK, body: "alex"},
		{name: "lower-case scheme", header: "bearer good", status: http.StatusOK, body: "alex"},
		{name: "missing header", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", status: http.StatusUnauthorized},
		{name: "unknown session", header: "Bearer bad", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/staff/away-days", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestAuth_StoreFailure(t *testing.T) {
	h := Auth(&fakeAuthenticator{err: errors.New("redis down")}, logger.Nop())(http.HandlerFunc(staffEcho))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(HeaderRequestID))

	const given = "3f1c1f4e-6a49-4f0e-9a7e-0e4a8f1d2b3c"
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderRequestID, given)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, given, seen)
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeMetrics{}
	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m))
	router.HandleFunc("/api/v1/appointments/{code}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/appointments/ABCD1234", nil))

	require.Len(t, m.requests, 1)
	assert.Equal(t, recordedRequest{http.MethodGet, "/api/v1/appointments/{code}", http.StatusNotFound}, m.requests[0])
}
