package get_available_slots

import (
	"github.com/sp075/salon-booking-system/internal/domain"
	"github.com/sp075/salon-booking-system/pkg/types"
)

// generateSlots генерирует сетку слотов фиксированной ширины от openTime до closeTime
// Слоты идут подряд без разрывов; неполный хвост (closeTime - openTime не кратно
// duration) отбрасывается, никогда не дополняется
func generateSlots(openTime, closeTime types.TimeString, durationMinutes int) ([]domain.Slot, error) {
	openMinutes, err := openTime.Minutes()
	if err != nil {
		return nil, err
	}
	closeMinutes, err := closeTime.Minutes()
	if err != nil {
		return nil, err
	}

	slots := make([]domain.Slot, 0)
	for start := openMinutes; start+durationMinutes <= closeMinutes; start += durationMinutes {
		slots = append(slots, domain.Slot{
			Start: types.FromMinutes(start),
			End:   types.FromMinutes(start + durationMinutes),
		})
	}

	return slots, nil
}

// excludeLunch удаляет слоты, пересекающиеся с обеденным окном [lunchStart, lunchEnd)
// Пересечение полуоткрытое: слот, граничащий с обедом, остаётся
func excludeLunch(slots []domain.Slot, lunchStart, lunchEnd types.TimeString) []domain.Slot {
	filtered := make([]domain.Slot, 0, len(slots))
	for _, slot := range slots {
		if !slot.OverlapsRange(lunchStart, lunchEnd) {
			filtered = append(filtered, slot)
		}
	}
	return filtered
}

// excludeBooked удаляет слоты, пересекающиеся с любым из занятых слотов
func excludeBooked(slots []domain.Slot, booked []domain.Slot) []domain.Slot {
	if len(booked) == 0 {
		return slots
	}

	filtered := make([]domain.Slot, 0, len(slots))
	for _, slot := range slots {
		overlaps := false
		for _, b := range booked {
			if slot.Overlaps(b) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			filtered = append(filtered, slot)
		}
	}
	return filtered
}

// reduceToContiguousRuns оставляет только стартовые слоты непрерывных окон длиной runLength
// Окно непрерывно, когда конец каждого слота совпадает с началом следующего
// При runLength <= 1 возвращает слоты как есть
func reduceToContiguousRuns(slots []domain.Slot, runLength int) []domain.Slot {
	if runLength <= 1 {
		return slots
	}

	starts := make([]domain.Slot, 0)
	for i := 0; i+runLength <= len(slots); i++ {
		contiguous := true
		for j := 0; j < runLength-1; j++ {
			if slots[i+j].End != slots[i+j+1].Start {
				contiguous = false
				break
			}
		}
		if contiguous {
			starts = append(starts, slots[i])
		}
	}
	return starts
}
