package jobs

import (
	"context"
	"time"

	"github.com/sp075/salon-booking-system/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований для фоновых задач
type BookingRepository interface {
	// ReleaseAbandoned переводит pending бронирования с истекшим hold в abandoned
	ReleaseAbandoned(ctx context.Context, cutoff time.Time) (int64, error)
	// AutoConfirmUpcoming подтверждает pending бронирования с близким началом
	AutoConfirmUpcoming(ctx context.Context, date time.Time, threshold types.TimeString) (int64, error)
	// MarkCompleted завершает confirmed бронирования с прошедшим временем окончания
	MarkCompleted(ctx context.Context, today time.Time, now types.TimeString) (int64, error)
}

// Metrics интерфейс метрик фоновых задач
type Metrics interface {
	AddSweepTransitions(sweep string, count int64)
	IncSweepFailure(sweep string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
