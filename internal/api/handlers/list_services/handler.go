package list_services

import (
	"net/http"

	"github.com/sp075/salon-booking-system/internal/api/handlers"
)

type Handler struct {
	service OwnersService
	logger  Logger
}

func NewHandler(service OwnersService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListCatalog(r.Context())
	if err != nil {
		h.logger.Error("GET /services - Failed to list catalog: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
