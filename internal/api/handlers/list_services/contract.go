package list_services

import (
	"context"

	"github.com/sp075/salon-booking-system/internal/service/owners/models"
)

type OwnersService interface {
	ListCatalog(ctx context.Context) (*models.ServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
