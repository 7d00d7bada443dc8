package list_services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	"github.com/m04kA/KingsBarber-BookingService/pkg/logger"
)

func TestHandle(t *testing.T) {
	catalog, err := domain.NewCatalog(
		[]domain.Service{{Name: "Haircut", PriceCents: 4000, DurationMinutes: 30}},
		[]domain.Barber{{Name: "Alex", SurchargeCents: 500, NotifyPhone: "+17145550100"}},
	)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	NewHandler(catalog, logger.Nop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/services", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "+17145550100")

	var resp CatalogResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, []ServiceResponse{{Name: "Haircut", PriceCents: 4000, DurationMinutes: 30}}, resp.Services)
	assert.Equal(t, []BarberResponse{{Name: "Alex", SurchargeCents: 500}}, resp.Barbers)
}
