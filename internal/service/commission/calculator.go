package commission

import (
	"fmt"
	"math"

	"github.com/m04kA/SMC-PricingService/internal/domain"
)

// Calculator делит реализованную выручку записи между мастером и салоном
// Работает только с провалидированными конфигурациями (см. service/commissioncfg)
type Calculator struct{}

// NewCalculator создает новый калькулятор комиссий
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Split вычисляет разбиение суммы baseAmount (в копейках) по конфигурации
// Доля мастера округляется до копейки, остаток уходит салону — поэтому
// ProfessionalAmount + EstablishmentAmount всегда в точности равны baseAmount
func (c *Calculator) Split(baseAmount int64, cfg *domain.CommissionConfig, professionalID int64) (*domain.CommissionSplit, error) {
	if baseAmount < 0 {
		return nil, fmt.Errorf("%w: base amount %d must not be negative", ErrInvalidBaseAmount, baseAmount)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	professionalPct := cfg.EffectiveProfessionalPercentage(professionalID)
	establishmentPct := 100 - professionalPct

	professionalAmount := int64(math.Round(float64(baseAmount) * professionalPct / 100))
	// Салон забирает остаток вместе с погрешностью округления
	establishmentAmount := baseAmount - professionalAmount

	return &domain.CommissionSplit{
		ProfessionalPercentage:  professionalPct,
		EstablishmentPercentage: establishmentPct,
		BaseAmount:              baseAmount,
		ProfessionalAmount:      professionalAmount,
		EstablishmentAmount:     establishmentAmount,
	}, nil
}
