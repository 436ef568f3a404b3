package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrOwnerNotFound возвращается, когда профиль владельца не найден
	ErrOwnerNotFound = errors.New("owner profile not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidStatusTransition возвращается при недопустимом переходе статуса
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrHoldExpired возвращается при попытке подтвердить бронирование
	// с истекшим hold
	ErrHoldExpired = errors.New("booking hold has expired")

	// ErrInvalidStatus возвращается при некорректном значении статуса в фильтре
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
