package update_owner_profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/sp075/salon-booking-system/internal/service/owners/models"
)

type OwnersService interface {
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest) (*models.ProfileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
