package get_customer_bookings

import (
	"context"

	"github.com/sp075/salon-booking-system/internal/service/bookings/models"
)

type BookingsService interface {
	GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
