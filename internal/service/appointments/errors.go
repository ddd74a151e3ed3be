package appointments

import "errors"

var (
	// ErrAppointmentNotFound запись не найдена
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("appointments: internal error")
)
