package get_commission_config

import (
	"time"

	"github.com/m04kA/SMC-PricingService/internal/domain"
)

// CommissionOverrideModel персональный процент мастера
type CommissionOverrideModel struct {
	ProfessionalID int64   `json:"professional_id"`
	Percentage     float64 `json:"percentage"`
}

// CommissionConfigResponse HTTP модель конфигурации комиссии
type CommissionConfigResponse struct {
	ID        int64 `json:"id"`
	ServiceID int64 `json:"service_id"`

	ProfessionalPercentage  float64 `json:"professional_percentage"`
	EstablishmentPercentage float64 `json:"establishment_percentage"`

	Overrides []CommissionOverrideModel `json:"overrides"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromDomain конвертирует доменную модель в HTTP ответ
func FromDomain(cfg *domain.CommissionConfig) *CommissionConfigResponse {
	overrides := make([]CommissionOverrideModel, 0, len(cfg.Overrides))
	for _, override := range cfg.Overrides {
		overrides = append(overrides, CommissionOverrideModel{
			ProfessionalID: override.ProfessionalID,
			Percentage:     override.Percentage,
		})
	}

	return &CommissionConfigResponse{
		ID:                      cfg.ID,
		ServiceID:               cfg.ServiceID,
		ProfessionalPercentage:  cfg.ProfessionalPercentage,
		EstablishmentPercentage: cfg.EstablishmentPercentage,
		Overrides:               overrides,
		CreatedAt:               cfg.CreatedAt,
		UpdatedAt:               cfg.UpdatedAt,
	}
}
