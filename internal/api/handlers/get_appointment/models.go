package get_appointment

import (
	"time"

	"github.com/m04kA/SMC-PricingService/internal/domain"
)

// CommissionResponse снимок комиссии завершённой записи
type CommissionResponse struct {
	ProfessionalPercentage  float64 `json:"professional_percentage"`
	EstablishmentPercentage float64 `json:"establishment_percentage"`
	BaseAmount              int64   `json:"base_amount"`
	ProfessionalAmount      int64   `json:"professional_amount"`
	EstablishmentAmount     int64   `json:"establishment_amount"`
}

// PaymentResponse состояние оплаты записи
type PaymentResponse struct {
	Method          string `json:"method"`
	Status          string `json:"status"`
	PaidAmount      int64  `json:"paid_amount"`
	RemainingAmount int64  `json:"remaining_amount"`
}

// AppointmentResponse HTTP модель записи
// Все суммы в копейках
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	CustomerID      int64  `json:"customer_id"`
	ProfessionalID  int64  `json:"professional_id"`
	ServiceID       int64  `json:"service_id"`
	ScheduledDate   string `json:"scheduled_date"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status"`

	ServiceName   string `json:"service_name"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`

	OriginalPrice       int64 `json:"original_price"`
	FinalPrice          int64 `json:"final_price"`
	TotalDiscountAmount int64 `json:"total_discount_amount"`

	Commission *CommissionResponse `json:"commission,omitempty"`
	Payment    PaymentResponse     `json:"payment"`

	CancellationReason *string `json:"cancellation_reason,omitempty"`
	CancellationFee    *int64  `json:"cancellation_fee,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// FromDomain конвертирует доменную модель записи в HTTP модель
func FromDomain(appointment *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:                  appointment.ID,
		CustomerID:          appointment.CustomerID,
		ProfessionalID:      appointment.ProfessionalID,
		ServiceID:           appointment.ServiceID,
		ScheduledDate:       appointment.ScheduledDate.Format(domain.DateFormat),
		StartTime:           appointment.StartTime.String(),
		DurationMinutes:     appointment.DurationMinutes,
		Status:              string(appointment.Status),
		ServiceName:         appointment.ServiceName,
		CustomerName:        appointment.CustomerName,
		CustomerPhone:       appointment.CustomerPhone,
		OriginalPrice:       appointment.OriginalPrice,
		FinalPrice:          appointment.FinalPrice,
		TotalDiscountAmount: appointment.TotalDiscountAmount,
		Payment: PaymentResponse{
			Method:          appointment.Payment.Method,
			Status:          string(appointment.Payment.Status),
			PaidAmount:      appointment.Payment.PaidAmount,
			RemainingAmount: appointment.Payment.RemainingAmount,
		},
		CancellationReason: appointment.CancellationReason,
		CancellationFee:    appointment.CancellationFee,
		CreatedAt:          appointment.CreatedAt,
		UpdatedAt:          appointment.UpdatedAt,
		ConfirmedAt:        appointment.ConfirmedAt,
		CompletedAt:        appointment.CompletedAt,
		CancelledAt:        appointment.CancelledAt,
	}

	if appointment.Commission != nil {
		resp.Commission = &CommissionResponse{
			ProfessionalPercentage:  appointment.Commission.ProfessionalPercentage,
			EstablishmentPercentage: appointment.Commission.EstablishmentPercentage,
			BaseAmount:              appointment.Commission.BaseAmount,
			ProfessionalAmount:      appointment.Commission.ProfessionalAmount,
			EstablishmentAmount:     appointment.Commission.EstablishmentAmount,
		}
	}

	return resp
}
