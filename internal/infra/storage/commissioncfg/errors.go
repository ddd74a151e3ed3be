package commissioncfg

import "errors"

var (
	// ErrConfigNotFound конфигурация комиссии для услуги не найдена
	ErrConfigNotFound = errors.New("commissioncfg storage: commission config not found")

	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("commissioncfg storage: failed to build query")

	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("commissioncfg storage: failed to execute query")

	// ErrScanRow ошибка сканирования результата запроса
	ErrScanRow = errors.New("commissioncfg storage: failed to scan row")
)
