package add_owner_service

import (
	"context"

	"github.com/google/uuid"

	"github.com/sp075/salon-booking-system/internal/service/owners/models"
)

type OwnersService interface {
	AddService(ctx context.Context, userID uuid.UUID, req *models.AddServiceRequest) (*models.OwnerServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
