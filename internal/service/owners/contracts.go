package owners

import (
	"context"

	"github.com/google/uuid"

	"github.com/sp075/salon-booking-system/internal/domain"
)

// OwnerRepository интерфейс репозитория профилей владельцев
type OwnerRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.OwnerProfile, error)
	UpdateSchedule(ctx context.Context, profileID uuid.UUID, openTime, closeTime string, dayOff *int) (*domain.OwnerProfile, error)
	UpdateProfile(ctx context.Context, profileID uuid.UUID, salonName, address *string) (*domain.OwnerProfile, error)
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	ListServices(ctx context.Context) ([]*domain.Service, error)
	GetOfferedServices(ctx context.Context, ownerProfileID uuid.UUID) ([]*domain.OwnerService, error)
	UpsertOwnerService(ctx context.Context, ownerProfileID uuid.UUID, serviceID int64, customPrice *float64) (*domain.OwnerService, error)
	DeleteOwnerService(ctx context.Context, ownerProfileID uuid.UUID, serviceID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
