package quote_price

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("quote_price: appointment not found")

	// ErrVoucherNotFound возвращается, когда ваучер с указанным кодом не найден
	ErrVoucherNotFound = errors.New("quote_price: voucher not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_price: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_price: internal error")
)
