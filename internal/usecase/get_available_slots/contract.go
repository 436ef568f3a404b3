package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sp075/salon-booking-system/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetBookedSlots возвращает занятые слоты владельца на дату с указанными статусами
	GetBookedSlots(ctx context.Context, ownerProfileID uuid.UUID, date time.Time, statuses []domain.BookingStatus) ([]domain.Slot, error)
}

// OwnerRepository интерфейс репозитория профилей владельцев
type OwnerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.OwnerProfile, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
