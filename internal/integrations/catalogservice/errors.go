package catalogservice

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("catalog service entry not found")

	// ErrProfessionalNotFound возвращается, когда мастер не найден в каталоге
	ErrProfessionalNotFound = errors.New("catalog professional not found")

	// ErrCustomerNotFound возвращается, когда клиент не найден в каталоге
	ErrCustomerNotFound = errors.New("catalog customer not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")
)
