package get_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/sp075/salon-booking-system/internal/service/bookings/models"
)

type BookingsService interface {
	GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
