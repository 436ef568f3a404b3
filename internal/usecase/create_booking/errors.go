package create_booking

import "errors"

var (
	// ErrOwnerNotFound возвращается, когда профиль владельца не найден
	ErrOwnerNotFound = errors.New("create_booking: owner profile not found")

	// ErrSlotNotAvailable возвращается, когда запрошенное время отсутствует
	// среди доступных стартовых слотов
	ErrSlotNotAvailable = errors.New("create_booking: requested start time is not available")

	// ErrNotEnoughSlots возвращается, когда от запрошенного времени не осталось
	// достаточно последовательных слотов для всех услуг
	ErrNotEnoughSlots = errors.New("create_booking: not enough consecutive slots available")

	// ErrServiceNotOffered возвращается, когда услуга не включена владельцем
	ErrServiceNotOffered = errors.New("create_booking: service is not offered by this owner")

	// ErrCrossesMidnight возвращается, когда окончание бронирования выходит за полночь
	ErrCrossesMidnight = errors.New("create_booking: booking would cross midnight")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
