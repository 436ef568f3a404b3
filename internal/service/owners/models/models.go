package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sp075/salon-booking-system/internal/domain"
)

// Request модели

// UpdateScheduleRequest запрос на обновление рабочего расписания
type UpdateScheduleRequest struct {
	OpenTime  string `json:"openTime"`  // "09:00"
	CloseTime string `json:"closeTime"` // "18:00"
	DayOff    *int   `json:"dayOff"`    // 0 = воскресенье, nil = без выходных
}

// UpdateProfileRequest запрос на обновление профиля салона
type UpdateProfileRequest struct {
	SalonName *string `json:"salonName,omitempty"`
	Address   *string `json:"address,omitempty"`
}

// AddServiceRequest запрос на включение услуги в прайс владельца
type AddServiceRequest struct {
	ServiceID   int64    `json:"serviceId"`
	CustomPrice *float64 `json:"customPrice,omitempty"` // nil = базовая цена каталога
}

// Response модели

// ProfileResponse ответ с данными профиля владельца
type ProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	SalonName *string   `json:"salonName,omitempty"`
	Address   *string   `json:"address,omitempty"`
	OpenTime  string    `json:"openTime,omitempty"`
	CloseTime string    `json:"closeTime,omitempty"`
	DayOff    *int      `json:"dayOff,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ServiceResponse услуга из общего каталога
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	DefaultPrice    float64 `json:"defaultPrice"`
	DurationMinutes int     `json:"durationMinutes"`
}

// OwnerServiceResponse услуга из прайса владельца
type OwnerServiceResponse struct {
	ID          int64    `json:"id"`
	ServiceID   int64    `json:"serviceId"`
	Name        string   `json:"name,omitempty"`
	IsActive    bool     `json:"isActive"`
	CustomPrice *float64 `json:"customPrice,omitempty"`
	Price       float64  `json:"price"` // Действующая цена
}

// ServiceListResponse ответ со списком услуг каталога
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// OwnerServiceListResponse ответ со списком услуг владельца
type OwnerServiceListResponse struct {
	Services []OwnerServiceResponse `json:"services"`
}

// Методы конвертации

// FromDomainProfile конвертирует domain модель в DTO
func FromDomainProfile(p *domain.OwnerProfile) *ProfileResponse {
	if p == nil {
		return nil
	}

	return &ProfileResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		SalonName: p.SalonName,
		Address:   p.Address,
		OpenTime:  p.OpenTime.String(),
		CloseTime: p.CloseTime.String(),
		DayOff:    p.DayOff,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список услуг каталога в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}

	for _, svc := range services {
		resp.Services = append(resp.Services, ServiceResponse{
			ID:              svc.ID,
			Name:            svc.Name,
			DefaultPrice:    svc.DefaultPrice,
			DurationMinutes: svc.DurationMinutes,
		})
	}

	return resp
}

// FromDomainOwnerService конвертирует услугу владельца в DTO
func FromDomainOwnerService(os *domain.OwnerService) *OwnerServiceResponse {
	if os == nil {
		return nil
	}

	resp := &OwnerServiceResponse{
		ID:          os.ID,
		ServiceID:   os.ServiceID,
		IsActive:    os.IsActive,
		CustomPrice: os.CustomPrice,
		Price:       os.EffectivePrice(),
	}

	if os.Service != nil {
		resp.Name = os.Service.Name
	}

	return resp
}

// FromDomainOwnerServiceList конвертирует список услуг владельца в DTO
func FromDomainOwnerServiceList(services []*domain.OwnerService) *OwnerServiceListResponse {
	resp := &OwnerServiceListResponse{
		Services: make([]OwnerServiceResponse, 0, len(services)),
	}

	for _, os := range services {
		if svcResp := FromDomainOwnerService(os); svcResp != nil {
			resp.Services = append(resp.Services, *svcResp)
		}
	}

	return resp
}
