package create_booking

import (
	"errors"
	"net/http"

	"github.com/sp075/salon-booking-system/internal/api/handlers"
	"github.com/sp075/salon-booking-system/internal/api/middleware"
	createBooking "github.com/sp075/salon-booking-system/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequest     = "некорректные параметры бронирования"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgNotEnoughSlots     = "недостаточно последовательных свободных слотов"
	msgServiceNotOffered  = "услуга недоступна у этого владельца"
	msgOwnerNotFound      = "владелец не найден"
	msgCrossesMidnight    = "бронирование не может переходить через полночь"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgInvalidRequest)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: customer=%s, owner=%s, start=%s",
				customerID, req.OwnerProfileID, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrNotEnoughSlots):
			h.logger.Warn("POST /bookings - Not enough slots: customer=%s, owner=%s, start=%s",
				customerID, req.OwnerProfileID, req.StartTime)
			handlers.RespondConflict(w, msgNotEnoughSlots)

		case errors.Is(err, createBooking.ErrServiceNotOffered):
			h.logger.Warn("POST /bookings - Service not offered: customer=%s, owner=%s", customerID, req.OwnerProfileID)
			handlers.RespondBadRequest(w, msgServiceNotOffered)

		case errors.Is(err, createBooking.ErrOwnerNotFound):
			h.logger.Warn("POST /bookings - Owner not found: owner=%s", req.OwnerProfileID)
			handlers.RespondNotFound(w, msgOwnerNotFound)

		case errors.Is(err, createBooking.ErrCrossesMidnight):
			h.logger.Warn("POST /bookings - Booking crosses midnight: customer=%s, start=%s", customerID, req.StartTime)
			handlers.RespondBadRequest(w, msgCrossesMidnight)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: customer=%s, owner=%s, error=%v",
				customerID, req.OwnerProfileID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking=%s, customer=%s, owner=%s",
		result.Booking.ID, customerID, req.OwnerProfileID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
