package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/sp075/salon-booking-system/internal/domain"
	createBooking "github.com/sp075/salon-booking-system/internal/usecase/create_booking"
	"github.com/sp075/salon-booking-system/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	OwnerProfileID string  `json:"ownerProfileId"`
	BookingDate    string  `json:"bookingDate"` // "2025-10-15"
	StartTime      string  `json:"startTime"`   // "10:00"
	ServiceIDs     []int64 `json:"serviceIds"`
}

// BookingServiceResponse HTTP модель услуги в бронировании
type BookingServiceResponse struct {
	ServiceID int64   `json:"serviceId"`
	SlotStart string  `json:"slotStart"`
	SlotEnd   string  `json:"slotEnd"`
	Price     float64 `json:"price"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID             string                   `json:"id"`
	CustomerID     string                   `json:"customerId"`
	OwnerProfileID string                   `json:"ownerProfileId"`
	BookingDate    string                   `json:"bookingDate"`
	StartTime      string                   `json:"startTime"`
	EndTime        string                   `json:"endTime"`
	TotalPrice     float64                  `json:"totalPrice"`
	Status         string                   `json:"status"`
	Services       []BookingServiceResponse `json:"services"`
	HeldAt         *string                  `json:"heldAt,omitempty"`
	CreatedAt      string                   `json:"createdAt"`
	UpdatedAt      string                   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// customerID приходит из контекста аутентификации, не из тела
func (r *CreateBookingRequest) ToUseCaseRequest(customerID uuid.UUID) (*createBooking.Request, error) {
	ownerProfileID, err := uuid.Parse(r.OwnerProfileID)
	if err != nil {
		return nil, err
	}

	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerID:     customerID,
		OwnerProfileID: ownerProfileID,
		Date:           bookingDate,
		StartTime:      startTime,
		ServiceIDs:     r.ServiceIDs,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	b := resp.Booking

	out := &BookingResponse{
		ID:             b.ID.String(),
		CustomerID:     b.CustomerID.String(),
		OwnerProfileID: b.OwnerProfileID.String(),
		BookingDate:    b.BookingDate.Format(domain.DateFormat),
		StartTime:      b.StartTime.String(),
		EndTime:        b.EndTime.String(),
		TotalPrice:     b.TotalPrice,
		Status:         string(b.Status),
		Services:       make([]BookingServiceResponse, 0, len(b.Services)),
		CreatedAt:      b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      b.UpdatedAt.Format(time.RFC3339),
	}

	for _, svc := range b.Services {
		out.Services = append(out.Services, BookingServiceResponse{
			ServiceID: svc.ServiceID,
			SlotStart: svc.SlotStart.String(),
			SlotEnd:   svc.SlotEnd.String(),
			Price:     svc.Price,
		})
	}

	if b.HeldAt != nil {
		heldStr := b.HeldAt.Format(time.RFC3339)
		out.HeldAt = &heldStr
	}

	return out
}
