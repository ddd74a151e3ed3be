package eligibility

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PricingService/internal/domain"
	"github.com/m04kA/SMC-PricingService/pkg/types"
)

// Reason код причины неприменимости инструмента
// Каждой проверке соответствует ровно один код — для диагностики и тестов
type Reason string

const (
	ReasonInactive                  Reason = "instrument_inactive"
	ReasonOutsideDateRange          Reason = "outside_date_range"
	ReasonDayOfWeekRestricted       Reason = "day_of_week_restricted"
	ReasonOutsideTimeWindow         Reason = "outside_time_window"
	ReasonBelowMinPurchase          Reason = "below_min_purchase"
	ReasonNotFirstTimeCustomer      Reason = "not_first_time_customer"
	ReasonUsageLimitReached         Reason = "usage_limit_reached"
	ReasonCustomerUsageLimitReached Reason = "customer_usage_limit_reached"
)

// BookingContext контекст записи, относительно которого проверяется инструмент
type BookingContext struct {
	// Now момент, на который проверяется применимость (дата/время оказания услуги)
	Now time.Time

	CustomerID int64

	// PriorAppointmentCount количество ранее завершённых записей клиента
	PriorAppointmentCount int

	// PurchaseAmount стоимость услуги до скидки, в копейках
	PurchaseAmount int64
}

// Result результат проверки применимости
type Result struct {
	Eligible bool
	Reason   Reason
}

func eligible() Result {
	return Result{Eligible: true}
}

func ineligible(reason Reason) Result {
	return Result{Eligible: false, Reason: reason}
}

// Evaluator решает, применим ли скидочный инструмент к конкретной записи
// Проверки выполняются строго по порядку с short-circuit: первая
// провалившаяся проверка определяет код причины
type Evaluator struct {
	usageReader UsageReader
}

// NewEvaluator создает новый evaluator поверх журнала использований
func NewEvaluator(usageReader UsageReader) *Evaluator {
	return &Evaluator{usageReader: usageReader}
}

// Evaluate проверяет применимость инструмента к контексту записи
// Ошибка возвращается только при сбое чтения счётчиков
func (e *Evaluator) Evaluate(ctx context.Context, instrument *domain.DiscountInstrument, bctx BookingContext) (Result, error) {
	// 1. Инструмент активен
	if !instrument.IsActive {
		return ineligible(ReasonInactive), nil
	}

	// 2. Текущий момент внутри периода действия
	if bctx.Now.Before(instrument.StartDate) || bctx.Now.After(instrument.EndDate) {
		return ineligible(ReasonOutsideDateRange), nil
	}

	// 3. Ограничение по дням недели
	if !instrument.AllowsDayOfWeek(bctx.Now.Weekday()) {
		return ineligible(ReasonDayOfWeekRestricted), nil
	}

	// 4. Временное окно [start, end)
	if instrument.TimeRestriction != nil {
		if !instrument.TimeRestriction.Contains(types.NewTimeString(bctx.Now)) {
			return ineligible(ReasonOutsideTimeWindow), nil
		}
	}

	// 5. Минимальная сумма покупки
	if instrument.MinPurchaseAmount != nil && bctx.PurchaseAmount < *instrument.MinPurchaseAmount {
		return ineligible(ReasonBelowMinPurchase), nil
	}

	// 6. Только для новых клиентов
	if instrument.FirstTimeCustomersOnly && bctx.PriorAppointmentCount > 0 {
		return ineligible(ReasonNotFirstTimeCustomer), nil
	}

	// 7. Общий лимит использований
	if instrument.UsageLimit != nil {
		total, err := e.usageReader.TotalUsages(ctx, instrument.ID)
		if err != nil {
			return Result{}, fmt.Errorf("eligibility: failed to read total usages for instrument %d: %w", instrument.ID, err)
		}
		if total >= *instrument.UsageLimit {
			return ineligible(ReasonUsageLimitReached), nil
		}
	}

	// 8. Лимит использований на клиента
	if instrument.UsageLimitPerCustomer != nil {
		used, err := e.usageReader.CustomerUsages(ctx, instrument.ID, bctx.CustomerID)
		if err != nil {
			return Result{}, fmt.Errorf("eligibility: failed to read customer usages for instrument %d: %w", instrument.ID, err)
		}
		if used >= *instrument.UsageLimitPerCustomer {
			return ineligible(ReasonCustomerUsageLimitReached), nil
		}
	}

	return eligible(), nil
}
