package remove_owner_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sp075/salon-booking-system/internal/api/handlers"
	"github.com/sp075/salon-booking-system/internal/api/middleware"
	"github.com/sp075/salon-booking-system/internal/service/owners"
)

const (
	msgUnauthorized     = "требуется аутентификация"
	msgInvalidServiceID = "некорректный идентификатор услуги"
	msgProfileNotFound  = "профиль владельца не найден"
	msgServiceNotFound  = "услуга не найдена в прайсе владельца"
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

// Handle DELETE /api/v1/owners/me/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("DELETE /owners/me/services/{serviceId} - Invalid service id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	if err := h.service.RemoveService(r.Context(), userID, serviceID); err != nil {
		switch {
		case errors.Is(err, owners.ErrOfferingNotFound):
			h.logger.Warn("DELETE /owners/me/services/{serviceId} - Not offered: user=%s, service=%d", userID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, owners.ErrProfileNotFound):
			h.logger.Warn("DELETE /owners/me/services/{serviceId} - Profile not found: user=%s", userID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		default:
			h.logger.Error("DELETE /owners/me/services/{serviceId} - Failed: user=%s, service=%d, error=%v",
				userID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /owners/me/services/{serviceId} - Service removed: user=%s, service=%d", userID, serviceID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
