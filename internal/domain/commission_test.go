package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommissionConfig_Validate(t *testing.T) {
	t.Run("valid default split", func(t *testing.T) {
		cfg := &CommissionConfig{
			ServiceID:               1,
			ProfessionalPercentage:  70,
			EstablishmentPercentage: 30,
		}
		require.NoError(t, cfg.Validate())
	})

	t.Run("percentages not summing to 100 rejected", func(t *testing.T) {
		cfg := &CommissionConfig{
			ServiceID:               1,
			ProfessionalPercentage:  70,
			EstablishmentPercentage: 25,
		}
		require.ErrorIs(t, cfg.Validate(), ErrInvalidCommissionConfig)
	})

	t.Run("override out of range rejected", func(t *testing.T) {
		cfg := &CommissionConfig{
			ServiceID:               1,
			ProfessionalPercentage:  70,
			EstablishmentPercentage: 30,
			Overrides: []CommissionOverride{
				{ProfessionalID: 5, Percentage: 110},
			},
		}
		require.ErrorIs(t, cfg.Validate(), ErrInvalidCommissionConfig)
	})

	t.Run("duplicate override rejected", func(t *testing.T) {
		cfg := &CommissionConfig{
			ServiceID:               1,
			ProfessionalPercentage:  70,
			EstablishmentPercentage: 30,
			Overrides: []CommissionOverride{
				{ProfessionalID: 5, Percentage: 80},
				{ProfessionalID: 5, Percentage: 60},
			},
		}
		require.ErrorIs(t, cfg.Validate(), ErrInvalidCommissionConfig)
	})

	t.Run("negative percentage rejected", func(t *testing.T) {
		cfg := &CommissionConfig{
			ServiceID:               1,
			ProfessionalPercentage:  -10,
			EstablishmentPercentage: 110,
		}
		require.ErrorIs(t, cfg.Validate(), ErrInvalidCommissionConfig)
	})
}

func TestCommissionConfig_EffectiveProfessionalPercentage(t *testing.T) {
	cfg := &CommissionConfig{
		ServiceID:               1,
		ProfessionalPercentage:  70,
		EstablishmentPercentage: 30,
		Overrides: []CommissionOverride{
			{ProfessionalID: 5, Percentage: 85},
		},
	}

	assert.Equal(t, 85.0, cfg.EffectiveProfessionalPercentage(5))
	assert.Equal(t, 70.0, cfg.EffectiveProfessionalPercentage(6), "no override falls back to default")
}
