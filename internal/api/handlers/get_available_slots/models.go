package get_available_slots

import (
	"github.com/sp075/salon-booking-system/internal/domain"
	availableSlots "github.com/sp075/salon-booking-system/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "10:30"
}

// AvailableSlotsResponse HTTP модель ответа со свободными слотами
type AvailableSlotsResponse struct {
	OwnerProfileID string         `json:"ownerProfileId"`
	Date           string         `json:"date"` // "2025-10-15"
	Slots          []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *availableSlots.Response) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		OwnerProfileID: resp.OwnerProfileID.String(),
		Date:           resp.Date.Format(domain.DateFormat),
		Slots:          make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			StartTime: slot.Start.String(),
			EndTime:   slot.End.String(),
		})
	}

	return out
}
