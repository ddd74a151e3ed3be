package instruments

import "errors"

var (
	// ErrInstrumentNotFound инструмент не найден
	ErrInstrumentNotFound = errors.New("instruments: instrument not found")

	// ErrInvalidInput некорректная конфигурация инструмента
	ErrInvalidInput = errors.New("instruments: invalid instrument configuration")

	// ErrCodeAlreadyExists ваучер с таким кодом уже существует
	ErrCodeAlreadyExists = errors.New("instruments: voucher code already exists")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("instruments: internal error")
)
