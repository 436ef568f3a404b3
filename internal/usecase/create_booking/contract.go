package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sp075/salon-booking-system/internal/domain"
	availableSlots "github.com/sp075/salon-booking-system/internal/usecase/get_available_slots"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// CreateWithServices атомарно создает бронирование вместе с назначениями услуг
	CreateWithServices(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	// GetOfferedServices возвращает услуги, включённые владельцем
	GetOfferedServices(ctx context.Context, ownerProfileID uuid.UUID) ([]*domain.OwnerService, error)
}

// AvailabilityProvider пересчитывает доступные слоты
// Вызывается внутри транзакции создания бронирования: контекст несёт транзакцию,
// и выборка занятых слотов выполняется с блокировкой строк
type AvailabilityProvider interface {
	Execute(ctx context.Context, req *availableSlots.Request) (*availableSlots.Response, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
