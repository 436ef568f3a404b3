package cancel_booking

import (
	"context"

	"github.com/google/uuid"
)

type BookingsService interface {
	Cancel(ctx context.Context, id uuid.UUID, customerID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
