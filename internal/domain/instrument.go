package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PricingService/pkg/types"
)

// InstrumentKind вид скидочного инструмента
type InstrumentKind string

const (
	// KindVoucher ваучер, активируется клиентом по коду
	KindVoucher InstrumentKind = "voucher"
	// KindPromotion акция, применяется автоматически по контексту записи
	KindPromotion InstrumentKind = "promotion"
)

// DiscountType тип скидки
type DiscountType string

const (
	DiscountPercentage  DiscountType = "percentage"
	DiscountFixedAmount DiscountType = "fixed_amount"
)

// ErrInvalidDiscountValue возвращается при некорректном значении скидки
// Проверяется при создании инструмента, а не при расчёте цены
var ErrInvalidDiscountValue = errors.New("domain: invalid discount value")

// TimeWindow временное окно действия акции, полуинтервал [Start, End)
type TimeWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// Contains returns true if t falls within the window [Start, End)
func (w TimeWindow) Contains(t types.TimeString) bool {
	return !t.IsBefore(w.Start) && t.IsBefore(w.End)
}

// Validate проверяет корректность окна
func (w TimeWindow) Validate() error {
	if err := w.Start.Validate(); err != nil {
		return err
	}
	if err := w.End.Validate(); err != nil {
		return err
	}
	if !w.Start.IsBefore(w.End) {
		return fmt.Errorf("domain: time window start %s must be before end %s", w.Start, w.End)
	}
	return nil
}

// DiscountInstrument represents a rule that can reduce a price:
// a code-redeemed voucher or an auto-applied promotion campaign.
// Authored by the management UI, read-only to the engine. Amounts are in cents.
type DiscountInstrument struct {
	ID   int64
	Kind InstrumentKind
	Name string

	// Code код активации; заполняется только для ваучеров
	Code string

	DiscountType DiscountType
	// Value процент для percentage (0-100) или сумма в копейках для fixed_amount
	Value float64

	IsActive  bool
	StartDate time.Time
	EndDate   time.Time

	MinPurchaseAmount      *int64
	FirstTimeCustomersOnly bool
	MaxDiscountCap         *int64

	// UsageLimit общий лимит использований; только для ваучеров
	UsageLimit *int
	// UsageLimitPerCustomer лимит использований на клиента
	// Для акций это maxUsagesPerCustomer, семантика одинаковая
	UsageLimitPerCustomer *int

	// Ограничения применимости; только для акций
	DayOfWeekRestrictions []time.Weekday
	TimeRestriction       *TimeWindow

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppliesAutomatically returns true for promotions that require no code
func (d *DiscountInstrument) AppliesAutomatically() bool {
	return d.Kind == KindPromotion
}

// AllowsDayOfWeek returns true if the weekday passes the restriction list
// An empty list means no restriction
func (d *DiscountInstrument) AllowsDayOfWeek(day time.Weekday) bool {
	if len(d.DayOfWeekRestrictions) == 0 {
		return true
	}
	for _, allowed := range d.DayOfWeekRestrictions {
		if allowed == day {
			return true
		}
	}
	return false
}

// Validate проверяет конфигурацию инструмента при создании
// Ошибки конфигурации отклоняются здесь и не доходят до расчёта цены
func (d *DiscountInstrument) Validate() error {
	switch d.Kind {
	case KindVoucher, KindPromotion:
	default:
		return fmt.Errorf("%w: unknown instrument kind %q", ErrInvalidDiscountValue, d.Kind)
	}

	switch d.DiscountType {
	case DiscountPercentage:
		if d.Value < 0 || d.Value > 100 {
			return fmt.Errorf("%w: percentage must be in [0, 100], got %v", ErrInvalidDiscountValue, d.Value)
		}
	case DiscountFixedAmount:
		if d.Value < 0 {
			return fmt.Errorf("%w: fixed amount must not be negative, got %v", ErrInvalidDiscountValue, d.Value)
		}
	default:
		return fmt.Errorf("%w: unknown discount type %q", ErrInvalidDiscountValue, d.DiscountType)
	}

	if d.Kind == KindVoucher && d.Code == "" {
		return fmt.Errorf("%w: voucher requires a redemption code", ErrInvalidDiscountValue)
	}

	if d.StartDate.IsZero() || d.EndDate.IsZero() || d.EndDate.Before(d.StartDate) {
		return fmt.Errorf("%w: invalid validity period", ErrInvalidDiscountValue)
	}

	if d.MinPurchaseAmount != nil && *d.MinPurchaseAmount < 0 {
		return fmt.Errorf("%w: minPurchaseAmount must not be negative", ErrInvalidDiscountValue)
	}
	if d.MaxDiscountCap != nil && *d.MaxDiscountCap < 0 {
		return fmt.Errorf("%w: maxDiscountCap must not be negative", ErrInvalidDiscountValue)
	}
	if d.UsageLimit != nil && *d.UsageLimit <= 0 {
		return fmt.Errorf("%w: usageLimit must be positive", ErrInvalidDiscountValue)
	}
	if d.UsageLimitPerCustomer != nil && *d.UsageLimitPerCustomer <= 0 {
		return fmt.Errorf("%w: usageLimitPerCustomer must be positive", ErrInvalidDiscountValue)
	}

	if d.TimeRestriction != nil {
		if err := d.TimeRestriction.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidDiscountValue, err)
		}
	}

	return nil
}
