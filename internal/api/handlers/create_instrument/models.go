package create_instrument

import (
	"time"

	"github.com/m04kA/SMC-PricingService/internal/domain"
	"github.com/m04kA/SMC-PricingService/pkg/types"
)

// TimeWindowModel временное окно применимости в формате HH:MM
type TimeWindowModel struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// CreateInstrumentRequest HTTP модель запроса на создание инструмента
// Суммы в копейках, value — процент или сумма в зависимости от discount_type
type CreateInstrumentRequest struct {
	Kind         string  `json:"kind"`
	Name         string  `json:"name"`
	Code         string  `json:"code,omitempty"`
	DiscountType string  `json:"discount_type"`
	Value        float64 `json:"value"`
	IsActive     bool    `json:"is_active"`
	StartDate    string  `json:"start_date"` // YYYY-MM-DD
	EndDate      string  `json:"end_date"`   // YYYY-MM-DD

	MinPurchaseAmount      *int64 `json:"min_purchase_amount,omitempty"`
	FirstTimeCustomersOnly bool   `json:"first_time_customers_only,omitempty"`
	MaxDiscountCap         *int64 `json:"max_discount_cap,omitempty"`

	UsageLimit            *int `json:"usage_limit,omitempty"`
	UsageLimitPerCustomer *int `json:"usage_limit_per_customer,omitempty"`

	DayOfWeekRestrictions []int            `json:"day_of_week_restrictions,omitempty"` // 0=воскресенье .. 6=суббота
	TimeRestriction       *TimeWindowModel `json:"time_restriction,omitempty"`
}

// ToDomain конвертирует HTTP запрос в доменную модель
func (r *CreateInstrumentRequest) ToDomain() (*domain.DiscountInstrument, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	instrument := &domain.DiscountInstrument{
		Kind:                   domain.InstrumentKind(r.Kind),
		Name:                   r.Name,
		Code:                   r.Code,
		DiscountType:           domain.DiscountType(r.DiscountType),
		Value:                  r.Value,
		IsActive:               r.IsActive,
		StartDate:              startDate,
		EndDate:                endDate,
		MinPurchaseAmount:      r.MinPurchaseAmount,
		FirstTimeCustomersOnly: r.FirstTimeCustomersOnly,
		MaxDiscountCap:         r.MaxDiscountCap,
		UsageLimit:             r.UsageLimit,
		UsageLimitPerCustomer:  r.UsageLimitPerCustomer,
	}

	for _, day := range r.DayOfWeekRestrictions {
		instrument.DayOfWeekRestrictions = append(instrument.DayOfWeekRestrictions, time.Weekday(day))
	}

	if r.TimeRestriction != nil {
		window := &domain.TimeWindow{
			Start: types.TimeString(r.TimeRestriction.Start),
			End:   types.TimeString(r.TimeRestriction.End),
		}
		instrument.TimeRestriction = window
	}

	return instrument, nil
}

// CreateInstrumentResponse HTTP модель ответа с созданным инструментом
type CreateInstrumentResponse struct {
	ID           int64   `json:"id"`
	Kind         string  `json:"kind"`
	Name         string  `json:"name"`
	Code         string  `json:"code,omitempty"`
	DiscountType string  `json:"discount_type"`
	Value        float64 `json:"value"`
	IsActive     bool    `json:"is_active"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`

	CreatedAt time.Time `json:"created_at"`
}

// FromDomain конвертирует доменную модель в HTTP ответ
func FromDomain(instrument *domain.DiscountInstrument) *CreateInstrumentResponse {
	return &CreateInstrumentResponse{
		ID:           instrument.ID,
		Kind:         string(instrument.Kind),
		Name:         instrument.Name,
		Code:         instrument.Code,
		DiscountType: string(instrument.DiscountType),
		Value:        instrument.Value,
		IsActive:     instrument.IsActive,
		StartDate:    instrument.StartDate.Format(domain.DateFormat),
		EndDate:      instrument.EndDate.Format(domain.DateFormat),
		CreatedAt:    instrument.CreatedAt,
	}
}
