package owner_confirm_booking

import (
	"context"

	"github.com/google/uuid"
)

type BookingsService interface {
	OwnerConfirm(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
