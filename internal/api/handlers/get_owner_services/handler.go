package get_owner_services

import (
	"errors"
	"net/http"

	"github.com/sp075/salon-booking-system/internal/api/handlers"
	"github.com/sp075/salon-booking-system/internal/api/middleware"
	"github.com/sp075/salon-booking-system/internal/service/owners"
)

const (
	msgUnauthorized    = "требуется аутентификация"
	msgProfileNotFound = "профиль владельца не найден"
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

// Handle GET /api/v1/owners/me/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	result, err := h.service.GetServices(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, owners.ErrProfileNotFound):
			h.logger.Warn("GET /owners/me/services - Profile not found: user=%s", userID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		default:
			h.logger.Error("GET /owners/me/services - Failed: user=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
