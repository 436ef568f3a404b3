package domain

import "fmt"

// BookingStatus статус бронирования
// Закрытое перечисление с явной таблицей переходов: любые другие переходы запрещены
type BookingStatus string

const (
	// StatusPending бронирование создано и удерживается до подтверждения клиентом (hold)
	StatusPending BookingStatus = "pending"
	// StatusConfirmed бронирование подтверждено клиентом или владельцем
	StatusConfirmed BookingStatus = "confirmed"
	// StatusRejected владелец отклонил бронирование
	StatusRejected BookingStatus = "rejected"
	// StatusCancelled клиент отменил бронирование
	StatusCancelled BookingStatus = "cancelled"
	// StatusCompleted визит состоялся, время окончания прошло
	StatusCompleted BookingStatus = "completed"
	// StatusAbandoned hold истёк, слот освобождён фоновой задачей
	StatusAbandoned BookingStatus = "abandoned"
)

// transitions таблица допустимых переходов статусов
var transitions = map[BookingStatus]map[BookingStatus]bool{
	StatusPending: {
		StatusConfirmed: true, // подтверждение клиентом/владельцем или auto-confirm
		StatusRejected:  true, // отклонение владельцем
		StatusCancelled: true, // отмена клиентом
		StatusAbandoned: true, // истечение hold
	},
	StatusConfirmed: {
		StatusRejected:  true, // владелец может отклонить и подтверждённое
		StatusCancelled: true,
		StatusCompleted: true, // время окончания прошло
	},
	// Терминальные статусы: переходов нет
	StatusRejected:  {},
	StatusCancelled: {},
	StatusCompleted: {},
	StatusAbandoned: {},
}

// CanTransitionTo возвращает true, если переход из текущего статуса в target допустим
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	allowed, ok := transitions[s]
	if !ok {
		return false
	}
	return allowed[target]
}

// IsTerminal возвращает true, если из статуса нет переходов
func (s BookingStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// IsValid возвращает true для известного статуса
func (s BookingStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// ParseBookingStatus валидирует строку и возвращает статус
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown booking status %q", s)
	}
	return status, nil
}

// BlockingStatuses статусы, при которых слоты бронирования считаются занятыми
// rejected/cancelled/completed/abandoned слоты не блокируют: hold держит слот
// только пока он живой или принят
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
