package create_appointment

import (
	"fmt"
	"time"
)

// Поддерживаемые способы оплаты
const (
	paymentMethodCash = "cash"
	paymentMethodCard = "card"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.ScheduledDate.IsZero() {
		return fmt.Errorf("%w: scheduledDate is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.PaymentMethod != "" && req.PaymentMethod != paymentMethodCash && req.PaymentMethod != paymentMethodCard {
		return fmt.Errorf("%w: unsupported payment method %q", ErrInvalidInput, req.PaymentMethod)
	}

	return nil
}

// validateDate проверяет, что дата записи не в прошлом
// Сравнение ведётся по календарным дням
func validateDate(scheduledDate, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	date := time.Date(scheduledDate.Year(), scheduledDate.Month(), scheduledDate.Day(), 0, 0, 0, 0, now.Location())

	if date.Before(today) {
		return fmt.Errorf("%w: date %s is in the past", ErrInvalidDate, date.Format("2006-01-02"))
	}

	return nil
}
