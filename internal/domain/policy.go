package domain

import (
	"time"

	"github.com/sp075/salon-booking-system/pkg/types"
)

// BookingPolicy процессная политика бронирования
// Читается из конфигурации на старте и передаётся явно в usecases и фоновые задачи
type BookingPolicy struct {
	SlotDurationMinutes int
	HoldTimeoutMinutes  int
	// Обеденный перерыв, общий для всех владельцев; инвариант LunchStart < LunchEnd
	LunchStart types.TimeString
	LunchEnd   types.TimeString
}

// DefaultBookingPolicy возвращает политику со значениями по умолчанию
func DefaultBookingPolicy() BookingPolicy {
	return BookingPolicy{
		SlotDurationMinutes: DefaultSlotDurationMinutes,
		HoldTimeoutMinutes:  DefaultHoldTimeoutMinutes,
		LunchStart:          types.TimeString(DefaultLunchStart),
		LunchEnd:            types.TimeString(DefaultLunchEnd),
	}
}

// HoldTimeout возвращает таймаут hold как time.Duration
func (p BookingPolicy) HoldTimeout() time.Duration {
	return time.Duration(p.HoldTimeoutMinutes) * time.Minute
}
