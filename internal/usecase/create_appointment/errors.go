package create_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrServiceInactive возвращается, когда услуга выключена в каталоге
	ErrServiceInactive = errors.New("create_appointment: service is inactive")

	// ErrProfessionalNotFound возвращается, когда мастер не найден в каталоге
	ErrProfessionalNotFound = errors.New("create_appointment: professional not found")

	// ErrProfessionalInactive возвращается, когда мастер не принимает записи
	ErrProfessionalInactive = errors.New("create_appointment: professional is inactive")

	// ErrCustomerNotFound возвращается, когда клиент не найден в каталоге
	ErrCustomerNotFound = errors.New("create_appointment: customer not found")

	// ErrInvalidDate возвращается при дате записи в прошлом
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
