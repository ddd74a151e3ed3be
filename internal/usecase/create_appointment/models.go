package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-PricingService/internal/domain"
	"github.com/m04kA/SMC-PricingService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	CustomerID     int64            // ID клиента
	ProfessionalID int64            // ID мастера
	ServiceID      int64            // ID услуги
	ScheduledDate  time.Time        // Дата записи (без времени)
	StartTime      types.TimeString // Время начала (например, "14:30")
	PaymentMethod  string           // Способ оплаты (cash, card); по умолчанию cash
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	CustomerID      int64
	ProfessionalID  int64
	ServiceID       int64
	ScheduledDate   time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string

	// Денормализованные данные
	ServiceName   string
	CustomerName  string
	CustomerPhone string

	// Цены в копейках; до подтверждения скидки не применены
	OriginalPrice       int64
	FinalPrice          int64
	TotalDiscountAmount int64

	PaymentMethod   string
	PaymentStatus   string
	RemainingAmount int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FromDomain конвертирует доменную модель записи в ответ usecase
func FromDomain(appointment *domain.Appointment) *Response {
	return &Response{
		ID:                  appointment.ID,
		CustomerID:          appointment.CustomerID,
		ProfessionalID:      appointment.ProfessionalID,
		ServiceID:           appointment.ServiceID,
		ScheduledDate:       appointment.ScheduledDate,
		StartTime:           appointment.StartTime,
		DurationMinutes:     appointment.DurationMinutes,
		Status:              string(appointment.Status),
		ServiceName:         appointment.ServiceName,
		CustomerName:        appointment.CustomerName,
		CustomerPhone:       appointment.CustomerPhone,
		OriginalPrice:       appointment.OriginalPrice,
		FinalPrice:          appointment.FinalPrice,
		TotalDiscountAmount: appointment.TotalDiscountAmount,
		PaymentMethod:       appointment.Payment.Method,
		PaymentStatus:       string(appointment.Payment.Status),
		RemainingAmount:     appointment.Payment.RemainingAmount,
		CreatedAt:           appointment.CreatedAt,
		UpdatedAt:           appointment.UpdatedAt,
	}
}
