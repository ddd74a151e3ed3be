package instrument

import "errors"

var (
	// ErrInstrumentNotFound возвращается, когда инструмент не найден
	ErrInstrumentNotFound = errors.New("instrument.repository: instrument not found")

	// ErrCodeAlreadyExists возвращается при создании ваучера с занятым кодом
	ErrCodeAlreadyExists = errors.New("instrument.repository: voucher code already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("instrument.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("instrument.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("instrument.repository: failed to scan row")
)
