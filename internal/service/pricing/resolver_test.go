package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PricingService/internal/domain"
	"github.com/m04kA/SMC-PricingService/pkg/ptr"
)

func percentOff(id int64, value float64) *domain.DiscountInstrument {
	return &domain.DiscountInstrument{
		ID:           id,
		Kind:         domain.KindPromotion,
		DiscountType: domain.DiscountPercentage,
		Value:        value,
	}
}

func fixedOff(id int64, cents int64) *domain.DiscountInstrument {
	return &domain.DiscountInstrument{
		ID:           id,
		Kind:         domain.KindVoucher,
		DiscountType: domain.DiscountFixedAmount,
		Value:        float64(cents),
	}
}

func TestNewResolver(t *testing.T) {
	_, err := NewResolver(StrategyBestSingle)
	require.NoError(t, err)

	_, err = NewResolver(Strategy("multiplicative"))
	require.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestResolver_NoInstruments(t *testing.T) {
	resolver, _ := NewResolver(StrategyBestSingle)

	result, err := resolver.Resolve(8000, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(8000), result.FinalPrice)
	assert.Equal(t, int64(0), result.TotalDiscountAmount)
	assert.Empty(t, result.Applied)
}

func TestResolver_SinglePercentage(t *testing.T) {
	// 80.00 при скидке 20% без капа: скидка 16.00, итог 64.00
	resolver, _ := NewResolver(StrategyBestSingle)

	result, err := resolver.Resolve(8000, []*domain.DiscountInstrument{percentOff(1, 20)})

	require.NoError(t, err)
	assert.Equal(t, int64(1600), result.TotalDiscountAmount)
	assert.Equal(t, int64(6400), result.FinalPrice)
	require.Len(t, result.Applied, 1)
	assert.Equal(t, int64(1600), result.Applied[0].Amount)
}

func TestResolver_SingleFixedAmount(t *testing.T) {
	resolver, _ := NewResolver(StrategyBestSingle)

	result, err := resolver.Resolve(8000, []*domain.DiscountInstrument{fixedOff(1, 1500)})

	require.NoError(t, err)
	assert.Equal(t, int64(1500), result.TotalDiscountAmount)
	assert.Equal(t, int64(6500), result.FinalPrice)
}

func TestResolver_MaxDiscountCap(t *testing.T) {
	resolver, _ := NewResolver(StrategyBestSingle)

	instrument := percentOff(1, 50)
	instrument.MaxDiscountCap = ptr.Ptr(int64(1000))

	result, err := resolver.Resolve(8000, []*domain.DiscountInstrument{instrument})

	require.NoError(t, err)
	assert.Equal(t, int64(1000), result.TotalDiscountAmount)
	assert.Equal(t, int64(7000), result.FinalPrice)
}

func TestResolver_FinalPriceNeverNegative(t *testing.T) {
	// Фиксированная скидка больше исходной цены: итог 0, а не отрицательный
	resolver, _ := NewResolver(StrategyBestSingle)

	result, err := resolver.Resolve(5000, []*domain.DiscountInstrument{fixedOff(1, 9000)})

	require.NoError(t, err)
	assert.Equal(t, int64(0), result.FinalPrice)
	assert.Equal(t, int64(5000), result.TotalDiscountAmount)
}

func TestResolver_BestSingleWins(t *testing.T) {
	resolver, _ := NewResolver(StrategyBestSingle)

	// 10% от 8000 = 800, фиксированная 1200 — выигрывает фиксированная
	result, err := resolver.Resolve(8000, []*domain.DiscountInstrument{
		percentOff(1, 10),
		fixedOff(2, 1200),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1200), result.TotalDiscountAmount)
	assert.Equal(t, int64(6800), result.FinalPrice)
	require.Len(t, result.Applied, 1)
	assert.Equal(t, int64(2), result.Applied[0].InstrumentID)
}

func TestResolver_BestSingleTieGoesToFirst(t *testing.T) {
	resolver, _ := NewResolver(StrategyBestSingle)

	result, err := resolver.Resolve(8000, []*domain.DiscountInstrument{
		fixedOff(7, 800),
		percentOff(8, 10), // тоже 800
	})

	require.NoError(t, err)
	require.Len(t, result.Applied, 1)
	assert.Equal(t, int64(7), result.Applied[0].InstrumentID)
}

func TestResolver_Additive(t *testing.T) {
	resolver, _ := NewResolver(StrategyAdditive)

	result, err := resolver.Resolve(8000, []*domain.DiscountInstrument{
		percentOff(1, 10), // 800
		fixedOff(2, 500),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1300), result.TotalDiscountAmount)
	assert.Equal(t, int64(6700), result.FinalPrice)
	require.Len(t, result.Applied, 2)
}

func TestResolver_AdditiveClampedAtOriginalPrice(t *testing.T) {
	resolver, _ := NewResolver(StrategyAdditive)

	result, err := resolver.Resolve(1000, []*domain.DiscountInstrument{
		fixedOff(1, 800),
		fixedOff(2, 800),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(0), result.FinalPrice)
	assert.Equal(t, int64(1000), result.TotalDiscountAmount)

	// Сумма применённых скидок равна итоговой скидке
	var sum int64
	for _, applied := range result.Applied {
		sum += applied.Amount
	}
	assert.Equal(t, result.TotalDiscountAmount, sum)
}

func TestResolver_NegativePriceRejected(t *testing.T) {
	resolver, _ := NewResolver(StrategyBestSingle)

	_, err := resolver.Resolve(-1, nil)
	require.ErrorIs(t, err, ErrNegativePrice)
}

func TestResolver_InvariantHolds(t *testing.T) {
	resolver, _ := NewResolver(StrategyBestSingle)

	prices := []int64{0, 1, 99, 8000, 123456}
	instruments := []*domain.DiscountInstrument{
		percentOff(1, 33),
		fixedOff(2, 2500),
	}

	for _, price := range prices {
		result, err := resolver.Resolve(price, instruments)
		require.NoError(t, err)
		assert.Equal(t, result.OriginalPrice-result.TotalDiscountAmount, result.FinalPrice, "price %d", price)
		assert.GreaterOrEqual(t, result.FinalPrice, int64(0), "price %d", price)
	}
}
