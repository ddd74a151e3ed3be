package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidCommissionConfig возвращается при некорректной конфигурации комиссии
// Проверяется при создании/обновлении конфигурации, а не при расчёте
var ErrInvalidCommissionConfig = errors.New("domain: invalid commission config")

// commissionTotal сумма процентов мастера и салона
const commissionTotal = 100.0

// CommissionOverride персональный процент мастера, перекрывающий дефолт услуги
// Доля салона для override вычисляется как 100 - Percentage
type CommissionOverride struct {
	ProfessionalID int64
	Percentage     float64
}

// CommissionConfig commission split configuration for a single service,
// with optional per-professional overrides. Authored by the management UI.
type CommissionConfig struct {
	ID        int64
	ServiceID int64

	ProfessionalPercentage  float64
	EstablishmentPercentage float64

	Overrides []CommissionOverride

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate проверяет инварианты конфигурации:
// дефолтные проценты в сумме дают ровно 100, каждый override в [0, 100]
func (c *CommissionConfig) Validate() error {
	if c.ProfessionalPercentage < 0 || c.ProfessionalPercentage > commissionTotal {
		return fmt.Errorf("%w: professional percentage %v out of [0, 100]",
			ErrInvalidCommissionConfig, c.ProfessionalPercentage)
	}
	if c.EstablishmentPercentage < 0 || c.EstablishmentPercentage > commissionTotal {
		return fmt.Errorf("%w: establishment percentage %v out of [0, 100]",
			ErrInvalidCommissionConfig, c.EstablishmentPercentage)
	}
	if c.ProfessionalPercentage+c.EstablishmentPercentage != commissionTotal {
		return fmt.Errorf("%w: percentages must sum to 100, got %v + %v",
			ErrInvalidCommissionConfig, c.ProfessionalPercentage, c.EstablishmentPercentage)
	}

	seen := make(map[int64]struct{}, len(c.Overrides))
	for _, override := range c.Overrides {
		if override.ProfessionalID <= 0 {
			return fmt.Errorf("%w: override professionalID must be positive", ErrInvalidCommissionConfig)
		}
		if override.Percentage < 0 || override.Percentage > commissionTotal {
			return fmt.Errorf("%w: override percentage %v for professional %d out of [0, 100]",
				ErrInvalidCommissionConfig, override.Percentage, override.ProfessionalID)
		}
		if _, ok := seen[override.ProfessionalID]; ok {
			return fmt.Errorf("%w: duplicate override for professional %d",
				ErrInvalidCommissionConfig, override.ProfessionalID)
		}
		seen[override.ProfessionalID] = struct{}{}
	}

	return nil
}

// EffectiveProfessionalPercentage возвращает процент мастера с учётом override
func (c *CommissionConfig) EffectiveProfessionalPercentage(professionalID int64) float64 {
	for _, override := range c.Overrides {
		if override.ProfessionalID == professionalID {
			return override.Percentage
		}
	}
	return c.ProfessionalPercentage
}

// CommissionSplit the division of a realized price between the professional
// and the establishment. Embedded into the appointment at completion time.
// Amounts are in cents; ProfessionalAmount + EstablishmentAmount == BaseAmount exactly.
type CommissionSplit struct {
	ProfessionalPercentage  float64
	EstablishmentPercentage float64

	BaseAmount          int64
	ProfessionalAmount  int64
	EstablishmentAmount int64
}
