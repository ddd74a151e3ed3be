package usage

import "errors"

var (
	// ErrQuotaExceeded лимит использований инструмента исчерпан
	ErrQuotaExceeded = errors.New("usage storage: usage quota exceeded")

	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("usage storage: failed to build query")

	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("usage storage: failed to execute query")

	// ErrScanRow ошибка сканирования результата запроса
	ErrScanRow = errors.New("usage storage: failed to scan row")
)
