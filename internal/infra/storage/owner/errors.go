package owner

import "errors"

var (
	// ErrProfileNotFound возвращается, когда профиль владельца не найден
	ErrProfileNotFound = errors.New("owner.repository: owner profile not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("owner.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("owner.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("owner.repository: failed to scan row")
)
