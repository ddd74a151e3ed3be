package eligibility

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PricingService/internal/domain"
	"github.com/m04kA/SMC-PricingService/pkg/ptr"
	"github.com/m04kA/SMC-PricingService/pkg/types"
)

// fakeUsageReader фейковый журнал использований для тестов
type fakeUsageReader struct {
	total    map[int64]int
	customer map[int64]map[int64]int
}

func newFakeUsageReader() *fakeUsageReader {
	return &fakeUsageReader{
		total:    make(map[int64]int),
		customer: make(map[int64]map[int64]int),
	}
}

func (f *fakeUsageReader) TotalUsages(_ context.Context, instrumentID int64) (int, error) {
	return f.total[instrumentID], nil
}

func (f *fakeUsageReader) CustomerUsages(_ context.Context, instrumentID, customerID int64) (int, error) {
	return f.customer[instrumentID][customerID], nil
}

func (f *fakeUsageReader) setCustomerUsages(instrumentID, customerID int64, count int) {
	if f.customer[instrumentID] == nil {
		f.customer[instrumentID] = make(map[int64]int)
	}
	f.customer[instrumentID][customerID] = count
}

// tuesday 2026-03-10 is a Tuesday
var tuesday = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func baseInstrument() *domain.DiscountInstrument {
	return &domain.DiscountInstrument{
		ID:           1,
		Kind:         domain.KindPromotion,
		Name:         "Счастливые часы",
		DiscountType: domain.DiscountPercentage,
		Value:        20,
		IsActive:     true,
		StartDate:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC),
	}
}

func baseContext() BookingContext {
	return BookingContext{
		Now:                   tuesday,
		CustomerID:            42,
		PriorAppointmentCount: 3,
		PurchaseAmount:        8000,
	}
}

func TestEvaluator_Eligible(t *testing.T) {
	evaluator := NewEvaluator(newFakeUsageReader())

	result, err := evaluator.Evaluate(context.Background(), baseInstrument(), baseContext())

	require.NoError(t, err)
	assert.True(t, result.Eligible)
	assert.Empty(t, result.Reason)
}

func TestEvaluator_ChecksShortCircuitInOrder(t *testing.T) {
	reader := newFakeUsageReader()
	evaluator := NewEvaluator(reader)

	tests := []struct {
		name   string
		mutate func(*domain.DiscountInstrument, *BookingContext)
		reason Reason
	}{
		{
			name:   "inactive",
			mutate: func(i *domain.DiscountInstrument, _ *BookingContext) { i.IsActive = false },
			reason: ReasonInactive,
		},
		{
			name: "before start date",
			mutate: func(i *domain.DiscountInstrument, b *BookingContext) {
				b.Now = i.StartDate.AddDate(0, 0, -1)
			},
			reason: ReasonOutsideDateRange,
		},
		{
			name: "after end date",
			mutate: func(i *domain.DiscountInstrument, b *BookingContext) {
				b.Now = i.EndDate.AddDate(0, 0, 1)
			},
			reason: ReasonOutsideDateRange,
		},
		{
			name: "day of week restricted",
			mutate: func(i *domain.DiscountInstrument, b *BookingContext) {
				i.DayOfWeekRestrictions = []time.Weekday{time.Tuesday}
				b.Now = tuesday.AddDate(0, 0, 1) // среда
			},
			reason: ReasonDayOfWeekRestricted,
		},
		{
			name: "outside time window",
			mutate: func(i *domain.DiscountInstrument, b *BookingContext) {
				i.TimeRestriction = &domain.TimeWindow{
					Start: types.TimeString("09:00"),
					End:   types.TimeString("11:00"),
				}
				// b.Now 12:00 — вне окна
			},
			reason: ReasonOutsideTimeWindow,
		},
		{
			name: "below min purchase",
			mutate: func(i *domain.DiscountInstrument, b *BookingContext) {
				i.MinPurchaseAmount = ptr.Ptr(int64(10000))
			},
			reason: ReasonBelowMinPurchase,
		},
		{
			name: "not first time customer",
			mutate: func(i *domain.DiscountInstrument, b *BookingContext) {
				i.FirstTimeCustomersOnly = true
			},
			reason: ReasonNotFirstTimeCustomer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instrument := baseInstrument()
			bctx := baseContext()
			tt.mutate(instrument, &bctx)

			result, err := evaluator.Evaluate(context.Background(), instrument, bctx)

			require.NoError(t, err)
			assert.False(t, result.Eligible)
			assert.Equal(t, tt.reason, result.Reason)
		})
	}
}

func TestEvaluator_DayOfWeekGating(t *testing.T) {
	// Акция только по вторникам: любой другой день недели -> Ineligible,
	// даже если все остальные условия выполнены
	evaluator := NewEvaluator(newFakeUsageReader())

	instrument := baseInstrument()
	instrument.DayOfWeekRestrictions = []time.Weekday{time.Tuesday}

	for dayOffset := 0; dayOffset < 7; dayOffset++ {
		bctx := baseContext()
		bctx.Now = tuesday.AddDate(0, 0, dayOffset)

		result, err := evaluator.Evaluate(context.Background(), instrument, bctx)
		require.NoError(t, err)

		if bctx.Now.Weekday() == time.Tuesday {
			assert.True(t, result.Eligible, "weekday %s", bctx.Now.Weekday())
		} else {
			assert.False(t, result.Eligible, "weekday %s", bctx.Now.Weekday())
			assert.Equal(t, ReasonDayOfWeekRestricted, result.Reason)
		}
	}
}

func TestEvaluator_UsageLimits(t *testing.T) {
	t.Run("total usage limit reached", func(t *testing.T) {
		reader := newFakeUsageReader()
		reader.total[1] = 5
		evaluator := NewEvaluator(reader)

		instrument := baseInstrument()
		instrument.UsageLimit = ptr.Ptr(5)

		result, err := evaluator.Evaluate(context.Background(), instrument, baseContext())
		require.NoError(t, err)
		assert.False(t, result.Eligible)
		assert.Equal(t, ReasonUsageLimitReached, result.Reason)
	})

	t.Run("total usage below limit", func(t *testing.T) {
		reader := newFakeUsageReader()
		reader.total[1] = 4
		evaluator := NewEvaluator(reader)

		instrument := baseInstrument()
		instrument.UsageLimit = ptr.Ptr(5)

		result, err := evaluator.Evaluate(context.Background(), instrument, baseContext())
		require.NoError(t, err)
		assert.True(t, result.Eligible)
	})

	t.Run("per customer limit reached", func(t *testing.T) {
		reader := newFakeUsageReader()
		reader.setCustomerUsages(1, 42, 2)
		evaluator := NewEvaluator(reader)

		instrument := baseInstrument()
		instrument.UsageLimitPerCustomer = ptr.Ptr(2)

		result, err := evaluator.Evaluate(context.Background(), instrument, baseContext())
		require.NoError(t, err)
		assert.False(t, result.Eligible)
		assert.Equal(t, ReasonCustomerUsageLimitReached, result.Reason)
	})

	t.Run("other customer usages do not count", func(t *testing.T) {
		reader := newFakeUsageReader()
		reader.setCustomerUsages(1, 99, 10)
		evaluator := NewEvaluator(reader)

		instrument := baseInstrument()
		instrument.UsageLimitPerCustomer = ptr.Ptr(2)

		result, err := evaluator.Evaluate(context.Background(), instrument, baseContext())
		require.NoError(t, err)
		assert.True(t, result.Eligible)
	})
}
