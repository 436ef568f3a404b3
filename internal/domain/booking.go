package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/sp075/salon-booking-system/pkg/types"
)

// Booking бронирование визита в салон
// Агрегат: владеет своими BookingServiceAssignment (каскадное удаление в БД)
type Booking struct {
	ID             uuid.UUID
	CustomerID     uuid.UUID
	OwnerProfileID uuid.UUID
	BookingDate    time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString // всегда StartTime + slotDuration * len(Services)
	TotalPrice     float64
	Status         BookingStatus

	// HeldAt время создания hold; не nil только пока Status == pending
	HeldAt *time.Time

	// Services назначения услуг на последовательные слоты,
	// вместе покрывают [StartTime, EndTime) без разрывов
	Services []BookingServiceAssignment

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingServiceAssignment услуга внутри бронирования с её слотом и зафиксированной ценой
type BookingServiceAssignment struct {
	ID        int64
	BookingID uuid.UUID
	ServiceID int64
	SlotStart types.TimeString
	SlotEnd   types.TimeString
	// Price цена на момент бронирования (custom price владельца или цена каталога)
	Price float64
}

// CanBeCancelled возвращает true, если бронирование можно отменить
func (b *Booking) CanBeCancelled() bool {
	return b.Status.CanTransitionTo(StatusCancelled)
}

// CanBeRejected возвращает true, если владелец может отклонить бронирование
func (b *Booking) CanBeRejected() bool {
	return b.Status.CanTransitionTo(StatusRejected)
}

// IsHoldExpired возвращает true, если hold просрочен относительно now
func (b *Booking) IsHoldExpired(now time.Time, holdTimeout time.Duration) bool {
	if b.Status != StatusPending || b.HeldAt == nil {
		return false
	}
	return now.Sub(*b.HeldAt) > holdTimeout
}

// OwnerBookingsFilter фильтр для выборки бронирований владельца
type OwnerBookingsFilter struct {
	OwnerProfileID uuid.UUID
	Date           *time.Time     // конкретная дата (опционально)
	Status         *BookingStatus // фильтр по статусу (опционально)
}
