package confirm_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PricingService/internal/service/eligibility"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("confirm_appointment: appointment not found")

	// ErrVoucherNotFound возвращается, когда ваучер с указанным кодом не найден
	ErrVoucherNotFound = errors.New("confirm_appointment: voucher not found")

	// ErrVoucherIneligible возвращается, когда запрошенный ваучер неприменим к записи
	// Конкретная причина доступна через errors.As с *IneligibleVoucherError
	ErrVoucherIneligible = errors.New("confirm_appointment: voucher is not eligible")

	// ErrQuotaExceeded возвращается, когда лимит использований инструмента исчерпан
	// Транзакция откатывается целиком: запись остаётся в статусе scheduled
	ErrQuotaExceeded = errors.New("confirm_appointment: usage quota exceeded")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_appointment: internal error")
)

// IneligibleVoucherError ошибка применимости запрошенного ваучера с кодом причины
type IneligibleVoucherError struct {
	Code   string
	Reason eligibility.Reason
}

// NewIneligibleVoucherError создает ошибку применимости ваучера
func NewIneligibleVoucherError(code string, reason eligibility.Reason) *IneligibleVoucherError {
	return &IneligibleVoucherError{Code: code, Reason: reason}
}

func (e *IneligibleVoucherError) Error() string {
	return fmt.Sprintf("confirm_appointment: voucher %q is not eligible: %s", e.Code, e.Reason)
}

// Is позволяет проверять ошибку через errors.Is(err, ErrVoucherIneligible)
func (e *IneligibleVoucherError) Is(target error) bool {
	return target == ErrVoucherIneligible
}
