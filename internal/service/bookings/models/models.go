package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sp075/salon-booking-system/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("invalid date")
)

// Request модели

// GetCustomerBookingsRequest запрос на получение бронирований клиента
type GetCustomerBookingsRequest struct {
	CustomerID uuid.UUID `json:"customerId"`
	Status     *string   `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// GetOwnerBookingsRequest запрос на получение бронирований владельца
type GetOwnerBookingsRequest struct {
	UserID uuid.UUID `json:"userId"`
	Date   *string   `json:"date,omitempty"`   // Фильтр по дате "2006-01-02" (опционально)
	Status *string   `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
// OwnerProfileID подставляется сервисом после разрешения профиля по userID
func (r *GetOwnerBookingsRequest) ToDomainFilter(ownerProfileID uuid.UUID) (domain.OwnerBookingsFilter, error) {
	filter := domain.OwnerBookingsFilter{
		OwnerProfileID: ownerProfileID,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.Date = &date
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingServiceResponse услуга в составе бронирования
type BookingServiceResponse struct {
	ServiceID int64   `json:"serviceId"`
	SlotStart string  `json:"slotStart"` // "10:00"
	SlotEnd   string  `json:"slotEnd"`   // "10:30"
	Price     float64 `json:"price"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID             uuid.UUID `json:"id"`
	CustomerID     uuid.UUID `json:"customerId"`
	OwnerProfileID uuid.UUID `json:"ownerProfileId"`
	BookingDate    string    `json:"bookingDate"` // "2025-10-15"
	StartTime      string    `json:"startTime"`   // "10:00"
	EndTime        string    `json:"endTime"`     // "11:00"
	TotalPrice     float64   `json:"totalPrice"`
	Status         string    `json:"status"`

	Services []BookingServiceResponse `json:"services"`

	HeldAt    *string   `json:"heldAt,omitempty"` // ISO 8601 format
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:             b.ID,
		CustomerID:     b.CustomerID,
		OwnerProfileID: b.OwnerProfileID,
		BookingDate:    b.BookingDate.Format(domain.DateFormat),
		StartTime:      b.StartTime.String(),
		EndTime:        b.EndTime.String(),
		TotalPrice:     b.TotalPrice,
		Status:         string(b.Status),
		Services:       make([]BookingServiceResponse, 0, len(b.Services)),
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}

	for _, svc := range b.Services {
		resp.Services = append(resp.Services, BookingServiceResponse{
			ServiceID: svc.ServiceID,
			SlotStart: svc.SlotStart.String(),
			SlotEnd:   svc.SlotEnd.String(),
			Price:     svc.Price,
		})
	}

	if b.HeldAt != nil {
		heldStr := b.HeldAt.Format(time.RFC3339)
		resp.HeldAt = &heldStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s, err := domain.ParseBookingStatus(status)
	if err != nil {
		return "", ErrInvalidStatus
	}
	return s, nil
}
