package domain

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Значения политики бронирования по умолчанию (переопределяются конфигурацией)
const (
	DefaultSlotDurationMinutes = 30
	DefaultHoldTimeoutMinutes  = 10
	DefaultLunchStart          = "13:00"
	DefaultLunchEnd            = "14:00"
)

// AutoConfirmLeadMinutes за сколько минут до начала pending бронирование
// автоматически подтверждается фоновой задачей
const AutoConfirmLeadMinutes = 30

// Ограничения валидации
const (
	MinDayOff = 0
	MaxDayOff = 6
)
