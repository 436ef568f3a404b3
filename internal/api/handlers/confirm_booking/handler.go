package confirm_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/sp075/salon-booking-system/internal/api/handlers"
	"github.com/sp075/salon-booking-system/internal/api/middleware"
	"github.com/sp075/salon-booking-system/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный идентификатор бронирования"
	msgBookingNotFound  = "бронирование не найдено"
	msgAccessDenied     = "нет доступа к этому бронированию"
	msgInvalidTransition = "бронирование нельзя подтвердить в текущем статусе"
	msgHoldExpired      = "время на подтверждение бронирования истекло"
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

// Handle POST /api/v1/bookings/{id}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgAccessDenied)
		return
	}

	bookingID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/confirm - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	if err := h.service.Confirm(r.Context(), bookingID, customerID); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/confirm - Booking not found: booking=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/confirm - Access denied: booking=%s, user=%s", bookingID, customerID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrHoldExpired):
			h.logger.Warn("POST /bookings/{id}/confirm - Hold expired: booking=%s", bookingID)
			handlers.RespondConflict(w, msgHoldExpired)

		case errors.Is(err, bookings.ErrInvalidStatusTransition):
			h.logger.Warn("POST /bookings/{id}/confirm - Invalid transition: booking=%s", bookingID)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("POST /bookings/{id}/confirm - Failed: booking=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/confirm - Booking confirmed: booking=%s, customer=%s", bookingID, customerID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
