package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{name: "pending to confirmed", from: StatusPending, to: StatusConfirmed, allowed: true},
		{name: "pending to rejected", from: StatusPending, to: StatusRejected, allowed: true},
		{name: "pending to cancelled", from: StatusPending, to: StatusCancelled, allowed: true},
		{name: "pending to abandoned", from: StatusPending, to: StatusAbandoned, allowed: true},
		{name: "pending to completed", from: StatusPending, to: StatusCompleted, allowed: false},
		{name: "confirmed to rejected", from: StatusConfirmed, to: StatusRejected, allowed: true},
		{name: "confirmed to cancelled", from: StatusConfirmed, to: StatusCancelled, allowed: true},
		{name: "confirmed to completed", from: StatusConfirmed, to: StatusCompleted, allowed: true},
		{name: "confirmed to abandoned", from: StatusConfirmed, to: StatusAbandoned, allowed: false},
		{name: "completed is terminal", from: StatusCompleted, to: StatusRejected, allowed: false},
		{name: "abandoned is terminal", from: StatusAbandoned, to: StatusCancelled, allowed: false},
		{name: "rejected is terminal", from: StatusRejected, to: StatusConfirmed, allowed: false},
		{name: "cancelled is terminal", from: StatusCancelled, to: StatusConfirmed, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusAbandoned.IsTerminal())
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus("confirmed")
	assert.NoError(t, err)
	assert.Equal(t, StatusConfirmed, status)

	_, err = ParseBookingStatus("in_progress")
	assert.Error(t, err)
}

func TestBooking_IsHoldExpired(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	timeout := 10 * time.Minute

	heldRecently := now.Add(-5 * time.Minute)
	heldLongAgo := now.Add(-11 * time.Minute)

	fresh := &Booking{Status: StatusPending, HeldAt: &heldRecently}
	assert.False(t, fresh.IsHoldExpired(now, timeout))

	stale := &Booking{Status: StatusPending, HeldAt: &heldLongAgo}
	assert.True(t, stale.IsHoldExpired(now, timeout))

	// Подтверждённое бронирование не имеет hold
	confirmed := &Booking{Status: StatusConfirmed, HeldAt: &heldLongAgo}
	assert.False(t, confirmed.IsHoldExpired(now, timeout))

	noHold := &Booking{Status: StatusPending}
	assert.False(t, noHold.IsHoldExpired(now, timeout))
}

func TestSlot_Overlaps(t *testing.T) {
	slot := Slot{Start: "11:30", End: "12:00"}

	// Реальное пересечение
	assert.True(t, slot.Overlaps(Slot{Start: "11:20", End: "11:40"}))
	// Граничащие интервалы не пересекаются
	assert.False(t, slot.Overlaps(Slot{Start: "11:00", End: "11:30"}))
	assert.False(t, slot.Overlaps(Slot{Start: "12:00", End: "12:30"}))
	// Полное покрытие
	assert.True(t, slot.Overlaps(Slot{Start: "11:00", End: "13:00"}))
}
