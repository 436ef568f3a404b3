package get_available_slots

import "errors"

var (
	// ErrOwnerNotFound возвращается, когда профиль владельца не найден
	ErrOwnerNotFound = errors.New("get_available_slots: owner profile not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
