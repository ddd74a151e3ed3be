package commissioncfg

import "errors"

var (
	// ErrConfigNotFound конфигурация комиссии для услуги не найдена
	ErrConfigNotFound = errors.New("commissioncfg: commission config not found")

	// ErrInvalidConfig некорректная конфигурация комиссии
	ErrInvalidConfig = errors.New("commissioncfg: invalid commission config")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("commissioncfg: internal error")
)
