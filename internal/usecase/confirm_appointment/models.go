package confirm_appointment

import (
	"time"

	"github.com/m04kA/SMC-PricingService/internal/domain"
	"github.com/m04kA/SMC-PricingService/internal/service/pricing"
)

// Request модель запроса на подтверждение записи
type Request struct {
	AppointmentID int64   // ID записи
	VoucherCode   *string // Код ваучера (опционально)
}

// AppliedDiscount применённая скидка в составе ответа
type AppliedDiscount struct {
	InstrumentID int64
	Kind         string
	Name         string
	Amount       int64 // Сумма скидки в копейках
}

// Response модель ответа с подтверждённой записью
type Response struct {
	ID                  int64
	Status              string
	OriginalPrice       int64
	FinalPrice          int64
	TotalDiscountAmount int64
	AppliedDiscounts    []AppliedDiscount
	ConfirmedAt         time.Time
}

func buildResponse(appointment *domain.Appointment, result pricing.Result, candidates map[int64]*domain.DiscountInstrument, confirmedAt time.Time) *Response {
	applied := make([]AppliedDiscount, 0, len(result.Applied))
	for _, discount := range result.Applied {
		name := ""
		if instrument, ok := candidates[discount.InstrumentID]; ok {
			name = instrument.Name
		}
		applied = append(applied, AppliedDiscount{
			InstrumentID: discount.InstrumentID,
			Kind:         string(discount.Kind),
			Name:         name,
			Amount:       discount.Amount,
		})
	}

	return &Response{
		ID:                  appointment.ID,
		Status:              string(domain.StatusConfirmed),
		OriginalPrice:       result.OriginalPrice,
		FinalPrice:          result.FinalPrice,
		TotalDiscountAmount: result.TotalDiscountAmount,
		AppliedDiscounts:    applied,
		ConfirmedAt:         confirmedAt,
	}
}
