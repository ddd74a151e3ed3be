package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-PricingService/internal/domain"
	createAppointment "github.com/m04kA/SMC-PricingService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-PricingService/pkg/types"
)

// CreateAppointmentRequest HTTP модель запроса на создание записи
type CreateAppointmentRequest struct {
	CustomerID     int64  `json:"customer_id"`
	ProfessionalID int64  `json:"professional_id"`
	ServiceID      int64  `json:"service_id"`
	ScheduledDate  string `json:"scheduled_date"` // YYYY-MM-DD
	StartTime      string `json:"start_time"`     // HH:MM
	PaymentMethod  string `json:"payment_method,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.ScheduledDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		CustomerID:     r.CustomerID,
		ProfessionalID: r.ProfessionalID,
		ServiceID:      r.ServiceID,
		ScheduledDate:  date,
		StartTime:      startTime,
		PaymentMethod:  r.PaymentMethod,
	}, nil
}

// CreateAppointmentResponse HTTP модель ответа с созданной записью
type CreateAppointmentResponse struct {
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

	PaymentMethod   string `json:"payment_method"`
	PaymentStatus   string `json:"payment_status"`
	RemainingAmount int64  `json:"remaining_amount"`

	CreatedAt time.Time `json:"created_at"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createAppointment.Response) *CreateAppointmentResponse {
	return &CreateAppointmentResponse{
		ID:                  resp.ID,
		CustomerID:          resp.CustomerID,
		ProfessionalID:      resp.ProfessionalID,
		ServiceID:           resp.ServiceID,
		ScheduledDate:       resp.ScheduledDate.Format(domain.DateFormat),
		StartTime:           resp.StartTime.String(),
		DurationMinutes:     resp.DurationMinutes,
		Status:              resp.Status,
		ServiceName:         resp.ServiceName,
		CustomerName:        resp.CustomerName,
		CustomerPhone:       resp.CustomerPhone,
		OriginalPrice:       resp.OriginalPrice,
		FinalPrice:          resp.FinalPrice,
		TotalDiscountAmount: resp.TotalDiscountAmount,
		PaymentMethod:       resp.PaymentMethod,
		PaymentStatus:       resp.PaymentStatus,
		RemainingAmount:     resp.RemainingAmount,
		CreatedAt:           resp.CreatedAt,
	}
}
