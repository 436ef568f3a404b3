package get_owner_profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/sp075/salon-booking-system/internal/service/owners/models"
)

type OwnersService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.ProfileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
