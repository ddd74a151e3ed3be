package commission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PricingService/internal/domain"
)

func defaultConfig() *domain.CommissionConfig {
	return &domain.CommissionConfig{
		ServiceID:               1,
		ProfessionalPercentage:  70,
		EstablishmentPercentage: 30,
	}
}

func TestCalculator_Split(t *testing.T) {
	calculator := NewCalculator()

	// 35.00 при 70/30: 24.50 мастеру, 10.50 салону
	split, err := calculator.Split(3500, defaultConfig(), 1)

	require.NoError(t, err)
	assert.Equal(t, int64(2450), split.ProfessionalAmount)
	assert.Equal(t, int64(1050), split.EstablishmentAmount)
	assert.Equal(t, int64(3500), split.BaseAmount)
	assert.Equal(t, 70.0, split.ProfessionalPercentage)
	assert.Equal(t, 30.0, split.EstablishmentPercentage)
}

func TestCalculator_Split_Override(t *testing.T) {
	calculator := NewCalculator()

	cfg := defaultConfig()
	cfg.Overrides = []domain.CommissionOverride{
		{ProfessionalID: 9, Percentage: 85},
	}

	split, err := calculator.Split(10000, cfg, 9)

	require.NoError(t, err)
	assert.Equal(t, int64(8500), split.ProfessionalAmount)
	assert.Equal(t, int64(1500), split.EstablishmentAmount)
	assert.Equal(t, 85.0, split.ProfessionalPercentage)
	assert.Equal(t, 15.0, split.EstablishmentPercentage)

	// Для мастера без override действует дефолт услуги
	split, err = calculator.Split(10000, cfg, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(7000), split.ProfessionalAmount)
}

func TestCalculator_Split_RoundingSink(t *testing.T) {
	calculator := NewCalculator()

	// 33.33 при 70/30: доля мастера 23.33 (округление),
	// погрешность достаётся салону, сумма сходится копейка в копейку
	split, err := calculator.Split(3333, defaultConfig(), 1)

	require.NoError(t, err)
	assert.Equal(t, split.BaseAmount, split.ProfessionalAmount+split.EstablishmentAmount)
	assert.Equal(t, int64(2333), split.ProfessionalAmount)
	assert.Equal(t, int64(1000), split.EstablishmentAmount)
}

func TestCalculator_Split_Totality(t *testing.T) {
	// Для любых сумм и валидных процентов сумма долей в точности равна базе
	calculator := NewCalculator()

	amounts := []int64{0, 1, 99, 100, 101, 3333, 9999, 123457}
	percentages := []float64{0, 1, 33, 50, 66.5, 70, 99, 100}

	for _, amount := range amounts {
		for _, pct := range percentages {
			cfg := &domain.CommissionConfig{
				ServiceID:               1,
				ProfessionalPercentage:  pct,
				EstablishmentPercentage: 100 - pct,
			}

			split, err := calculator.Split(amount, cfg, 1)
			require.NoError(t, err)
			assert.Equal(t, amount, split.ProfessionalAmount+split.EstablishmentAmount,
				"amount=%d pct=%v", amount, pct)
		}
	}
}

func TestCalculator_Split_InvalidInput(t *testing.T) {
	calculator := NewCalculator()

	t.Run("negative base amount", func(t *testing.T) {
		_, err := calculator.Split(-100, defaultConfig(), 1)
		require.ErrorIs(t, err, ErrInvalidBaseAmount)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.EstablishmentPercentage = 50
		_, err := calculator.Split(1000, cfg, 1)
		require.ErrorIs(t, err, domain.ErrInvalidCommissionConfig)
	})
}
