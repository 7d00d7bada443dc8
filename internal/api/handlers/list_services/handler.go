package list_services

import (
	"net/http"

	"github.com/m04kA/KingsBarber-BookingService/internal/api/handlers"
)

type Handler struct {
	catalog Catalog
	logger  Logger
}

func NewHandler(catalog Catalog, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp := FromDomainCatalog(h.catalog.Services(), h.catalog.Barbers())
	h.logger.Info("GET /services - Catalog retrieved: services=%d, barbers=%d", len(resp.Services), len(resp.Barbers))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
