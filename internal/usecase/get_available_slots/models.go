package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/sp075/salon-booking-system/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	OwnerProfileID uuid.UUID // ID профиля владельца
	Date           time.Time // Дата, на которую запрашиваются слоты (без времени)
	ServiceIDs     []int64   // Запрошенные услуги; от их количества зависит требуемая длина окна
}

// Response модель ответа со списком доступных слотов
type Response struct {
	OwnerProfileID uuid.UUID     // ID профиля владельца
	Date           time.Time     // Дата запроса
	Slots          []domain.Slot // Доступные слоты в хронологическом порядке
}

// serviceCount возвращает требуемое количество последовательных слотов
func (r *Request) serviceCount() int {
	if len(r.ServiceIDs) == 0 {
		return 1
	}
	return len(r.ServiceIDs)
}
