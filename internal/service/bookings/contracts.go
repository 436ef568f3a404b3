package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sp075/salon-booking-system/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetByCustomer(ctx context.Context, customerID uuid.UUID, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByOwnerWithFilter(ctx context.Context, filter domain.OwnerBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, fromStatus, toStatus domain.BookingStatus, clearHold bool) error
}

// OwnerRepository интерфейс репозитория профилей владельцев
type OwnerRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.OwnerProfile, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
