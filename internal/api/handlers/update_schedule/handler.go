package update_schedule

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
	msgInvalidSchedule    = "некорректное рабочее расписание"
	msgProfileNotFound    = "профиль владельца не найден"
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

// Handle PUT /api/v1/owners/me/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req models.UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /owners/me/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSchedule(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, owners.ErrInvalidSchedule):
			h.logger.Warn("PUT /owners/me/schedule - Invalid schedule: user=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		case errors.Is(err, owners.ErrProfileNotFound):
			h.logger.Warn("PUT /owners/me/schedule - Profile not found: user=%s", userID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		default:
			h.logger.Error("PUT /owners/me/schedule - Failed: user=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /owners/me/schedule - Schedule updated: user=%s", userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
