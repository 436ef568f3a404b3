package remove_owner_service

import (
	"context"

	"github.com/google/uuid"
)

type OwnersService interface {
	RemoveService(ctx context.Context, userID uuid.UUID, serviceID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
