package get_owner_bookings

import (
	"errors"
	"net/http"

	"github.com/sp075/salon-booking-system/internal/api/handlers"
	"github.com/sp075/salon-booking-system/internal/api/middleware"
	"github.com/sp075/salon-booking-system/internal/service/bookings"
	"github.com/sp075/salon-booking-system/internal/service/bookings/models"
)

const (
	msgUnauthorized  = "требуется аутентификация"
	msgOwnerNotFound = "профиль владельца не найден"
	msgInvalidFilter = "некорректные параметры фильтра"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/owners/me/bookings?date=2025-10-15&status=pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	req := &models.GetOwnerBookingsRequest{UserID: userID}
	if date := r.URL.Query().Get("date"); date != "" {
		req.Date = &date
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetOwnerBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrOwnerNotFound):
			h.logger.Warn("GET /owners/me/bookings - Owner profile not found: user=%s", userID)
			handlers.RespondNotFound(w, msgOwnerNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /owners/me/bookings - Invalid filter: user=%s", userID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /owners/me/bookings - Failed: user=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
