package domain

import "github.com/sp075/salon-booking-system/pkg/types"

// Slot временной слот фиксированной ширины, кандидат для бронирования одной услуги
// Вычисляется на лету и никогда не сохраняется как отдельная сущность
type Slot struct {
	Start types.TimeString
	End   types.TimeString
}

// Overlaps проверяет пересечение с другим интервалом
// Полуоткрытые интервалы [start, end): граничащие слоты не пересекаются
func (s Slot) Overlaps(other Slot) bool {
	return s.Start.IsBefore(other.End) && s.End.IsAfter(other.Start)
}

// OverlapsRange проверяет пересечение с интервалом [start, end)
func (s Slot) OverlapsRange(start, end types.TimeString) bool {
	return s.Start.IsBefore(end) && s.End.IsAfter(start)
}
