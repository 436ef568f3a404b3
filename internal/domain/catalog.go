package domain

import (
	"time"

	"github.com/google/uuid"
)

// Service услуга из общего каталога
type Service struct {
	ID           int64
	Name         string
	DefaultPrice float64
	// DurationMinutes декларативная длительность из каталога; в расчёте слотов
	// не участвует, все услуги занимают ровно один слот фиксированной ширины
	DurationMinutes int
}

// OwnerService включение услуги каталога владельцем, возможно с собственной ценой
type OwnerService struct {
	ID             int64
	OwnerProfileID uuid.UUID
	ServiceID      int64
	IsActive       bool
	// CustomPrice цена владельца; nil = используется цена каталога
	CustomPrice *float64

	// Service данные каталога (заполняются репозиторием при выборке)
	Service *Service

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectivePrice возвращает цену владельца, если задана, иначе цену каталога
func (os *OwnerService) EffectivePrice() float64 {
	if os.CustomPrice != nil {
		return *os.CustomPrice
	}
	if os.Service != nil {
		return os.Service.DefaultPrice
	}
	return 0
}
