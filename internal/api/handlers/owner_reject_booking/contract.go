package owner_reject_booking

import (
	"context"

	"github.com/google/uuid"
)

type BookingsService interface {
	OwnerReject(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
