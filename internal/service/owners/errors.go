package owners

import "errors"

var (
	// ErrProfileNotFound возвращается, когда профиль владельца не найден
	ErrProfileNotFound = errors.New("owner profile not found")

	// ErrServiceNotFound возвращается, когда услуга отсутствует в каталоге
	ErrServiceNotFound = errors.New("service not found")

	// ErrOfferingNotFound возвращается, когда услуга не включена владельцем
	ErrOfferingNotFound = errors.New("owner service not found")

	// ErrInvalidSchedule возвращается при некорректном рабочем расписании
	ErrInvalidSchedule = errors.New("invalid working schedule")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
