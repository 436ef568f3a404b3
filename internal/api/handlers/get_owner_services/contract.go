package get_owner_services

import (
	"context"

	"github.com/google/uuid"

	"github.com/sp075/salon-booking-system/internal/service/owners/models"
)

type OwnersService interface {
	GetServices(ctx context.Context, userID uuid.UUID) (*models.OwnerServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
