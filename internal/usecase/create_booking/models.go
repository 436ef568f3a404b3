package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/sp075/salon-booking-system/internal/domain"
	"github.com/sp075/salon-booking-system/pkg/types"
)

// Request запрос на создание бронирования
type Request struct {
	CustomerID     uuid.UUID
	OwnerProfileID uuid.UUID
	Date           time.Time
	StartTime      types.TimeString
	ServiceIDs     []int64
}

// Response результат создания бронирования
type Response struct {
	Booking *domain.Booking
}
