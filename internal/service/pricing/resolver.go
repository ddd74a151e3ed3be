package pricing

import (
	"fmt"
	"math"

	"github.com/m04kA/SMC-PricingService/internal/domain"
)

// Strategy политика применения нескольких одновременно применимых инструментов
type Strategy string

const (
	// StrategyBestSingle применяется только инструмент с наибольшей скидкой
	// Дефолтная политика: исключает двойное списание скидок
	StrategyBestSingle Strategy = "best_single"

	// StrategyAdditive скидки всех инструментов складываются
	// Каждая скидка считается от исходной цены, итог ограничен исходной ценой
	StrategyAdditive Strategy = "additive"
)

// AppliedDiscount фактически применённая скидка одного инструмента
type AppliedDiscount struct {
	InstrumentID int64
	Kind         domain.InstrumentKind
	Amount       int64
}

// Result результат расчёта итоговой цены
// Инвариант: FinalPrice = OriginalPrice - TotalDiscountAmount, FinalPrice >= 0,
// сумма Applied равна TotalDiscountAmount
type Result struct {
	OriginalPrice       int64
	FinalPrice          int64
	TotalDiscountAmount int64
	Applied             []AppliedDiscount
}

// Resolver вычисляет итоговую цену по списку уже применимых инструментов
// Фильтрация по применимости — ответственность eligibility-сервиса
type Resolver struct {
	strategy Strategy
}

// NewResolver создает resolver с указанной стратегией стекинга
func NewResolver(strategy Strategy) (*Resolver, error) {
	switch strategy {
	case StrategyBestSingle, StrategyAdditive:
		return &Resolver{strategy: strategy}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// Strategy возвращает активную стратегию
func (r *Resolver) Strategy() Strategy {
	return r.strategy
}

// Resolve вычисляет итоговую цену
// TotalDiscountAmount записывается всегда, даже если скидка нулевая
func (r *Resolver) Resolve(originalPrice int64, instruments []*domain.DiscountInstrument) (Result, error) {
	if originalPrice < 0 {
		return Result{}, fmt.Errorf("%w: got %d", ErrNegativePrice, originalPrice)
	}

	result := Result{
		OriginalPrice: originalPrice,
		FinalPrice:    originalPrice,
		Applied:       []AppliedDiscount{},
	}

	if len(instruments) == 0 {
		return result, nil
	}

	switch r.strategy {
	case StrategyAdditive:
		r.resolveAdditive(&result, instruments)
	default:
		r.resolveBestSingle(&result, instruments)
	}

	return result, nil
}

// resolveBestSingle применяет один инструмент с наибольшей скидкой
// При равной скидке выигрывает более ранний в списке кандидатов
func (r *Resolver) resolveBestSingle(result *Result, instruments []*domain.DiscountInstrument) {
	best := instruments[0]
	bestDiscount := effectiveDiscount(result.OriginalPrice, best)

	for _, instrument := range instruments[1:] {
		if discount := effectiveDiscount(result.OriginalPrice, instrument); discount > bestDiscount {
			best = instrument
			bestDiscount = discount
		}
	}

	if bestDiscount > 0 {
		result.Applied = append(result.Applied, AppliedDiscount{
			InstrumentID: best.ID,
			Kind:         best.Kind,
			Amount:       bestDiscount,
		})
	}

	result.TotalDiscountAmount = bestDiscount
	result.FinalPrice = result.OriginalPrice - bestDiscount
}

// resolveAdditive складывает скидки всех инструментов
// Каждая скидка считается от исходной цены; суммарная скидка не может
// превысить исходную цену — избыток урезается у последних инструментов
func (r *Resolver) resolveAdditive(result *Result, instruments []*domain.DiscountInstrument) {
	remaining := result.OriginalPrice

	for _, instrument := range instruments {
		discount := effectiveDiscount(result.OriginalPrice, instrument)
		if discount > remaining {
			discount = remaining
		}
		if discount > 0 {
			result.Applied = append(result.Applied, AppliedDiscount{
				InstrumentID: instrument.ID,
				Kind:         instrument.Kind,
				Amount:       discount,
			})
		}
		remaining -= discount
		if remaining == 0 {
			break
		}
	}

	result.FinalPrice = remaining
	result.TotalDiscountAmount = result.OriginalPrice - remaining
}

// effectiveDiscount вычисляет фактическую скидку инструмента в копейках:
// сырая скидка, ограниченная maxDiscountCap и исходной ценой
func effectiveDiscount(originalPrice int64, instrument *domain.DiscountInstrument) int64 {
	var raw int64

	switch instrument.DiscountType {
	case domain.DiscountFixedAmount:
		raw = int64(math.Round(instrument.Value))
	case domain.DiscountPercentage:
		raw = int64(math.Round(float64(originalPrice) * instrument.Value / 100))
	}

	if instrument.MaxDiscountCap != nil && raw > *instrument.MaxDiscountCap {
		raw = *instrument.MaxDiscountCap
	}
	// Итоговая цена не может уйти ниже нуля
	if raw > originalPrice {
		raw = originalPrice
	}
	if raw < 0 {
		raw = 0
	}

	return raw
}
