package add_owner_service

import (
	"errors"
	"net/http"

	"github.com/sp075/salon-booking-system/internal/api/handlers"
	"github.com/sp075/salon-booking-system/internal/api/middleware"
	"github.com/sp075/salon-booking-system/internal/service/owners"
	"github.com/sp075/salon-booking-system/internal/service/owners/models"
)

const (
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequest     = "некорректные параметры услуги"
	msgProfileNotFound    = "профиль владельца не найден"
	msgServiceNotFound    = "услуга не найдена в каталоге"
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

// Handle POST /api/v1/owners/me/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req models.AddServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /owners/me/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddService(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, owners.ErrServiceNotFound):
			h.logger.Warn("POST /owners/me/services - Service not found: user=%s, service=%d", userID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, owners.ErrProfileNotFound):
			h.logger.Warn("POST /owners/me/services - Profile not found: user=%s", userID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		case errors.Is(err, owners.ErrInvalidInput):
			h.logger.Warn("POST /owners/me/services - Invalid input: user=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /owners/me/services - Failed: user=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /owners/me/services - Service added: user=%s, service=%d", userID, req.ServiceID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
