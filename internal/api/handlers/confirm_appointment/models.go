package confirm_appointment

import (
	"time"

	confirmAppointment "github.com/m04kA/SMC-PricingService/internal/usecase/confirm_appointment"
)

// ConfirmAppointmentRequest HTTP модель запроса на подтверждение записи
type ConfirmAppointmentRequest struct {
	VoucherCode *string `json:"voucher_code,omitempty"`
}

// AppliedDiscountResponse применённая скидка в составе ответа
type AppliedDiscountResponse struct {
	InstrumentID int64  `json:"instrument_id"`
	Kind         string `json:"kind"`
	Name         string `json:"name"`
	Amount       int64  `json:"amount"`
}

// ConfirmAppointmentResponse HTTP модель ответа с подтверждённой записью
type ConfirmAppointmentResponse struct {
	ID                  int64                     `json:"id"`
	Status              string                    `json:"status"`
	OriginalPrice       int64                     `json:"original_price"`
	FinalPrice          int64                     `json:"final_price"`
	TotalDiscountAmount int64                     `json:"total_discount_amount"`
	AppliedDiscounts    []AppliedDiscountResponse `json:"applied_discounts"`
	ConfirmedAt         time.Time                 `json:"confirmed_at"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *confirmAppointment.Response) *ConfirmAppointmentResponse {
	applied := make([]AppliedDiscountResponse, 0, len(resp.AppliedDiscounts))
	for _, discount := range resp.AppliedDiscounts {
		applied = append(applied, AppliedDiscountResponse{
			InstrumentID: discount.InstrumentID,
			Kind:         discount.Kind,
			Name:         discount.Name,
			Amount:       discount.Amount,
		})
	}

	return &ConfirmAppointmentResponse{
		ID:                  resp.ID,
		Status:              resp.Status,
		OriginalPrice:       resp.OriginalPrice,
		FinalPrice:          resp.FinalPrice,
		TotalDiscountAmount: resp.TotalDiscountAmount,
		AppliedDiscounts:    applied,
		ConfirmedAt:         resp.ConfirmedAt,
	}
}
