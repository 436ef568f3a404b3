package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/sp075/salon-booking-system/pkg/types"
)

// OwnerProfile профиль владельца салона с рабочим расписанием
// Единственный неявный ресурс: один владелец обслуживает одного клиента за слот
type OwnerProfile struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	SalonName *string
	Address   *string

	// Рабочие часы; инвариант OpenTime < CloseTime
	OpenTime  types.TimeString
	CloseTime types.TimeString

	// DayOff выходной день недели (0 = воскресенье), nil = без выходных
	DayOff *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDayOff возвращает true, если дата приходится на выходной владельца
func (p *OwnerProfile) IsDayOff(date time.Time) bool {
	return p.DayOff != nil && *p.DayOff == int(date.Weekday())
}

// HasWorkingHours возвращает true, если расписание заполнено
func (p *OwnerProfile) HasWorkingHours() bool {
	return !p.OpenTime.IsZero() && !p.CloseTime.IsZero()
}
