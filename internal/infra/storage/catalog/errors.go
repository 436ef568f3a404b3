package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга каталога не найдена
	ErrServiceNotFound = errors.New("catalog.repository: service not found")

	// ErrOfferingNotFound возвращается, когда услуга не включена владельцем
	ErrOfferingNotFound = errors.New("catalog.repository: owner service not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
