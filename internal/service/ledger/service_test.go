package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PricingService/internal/domain"
	usageRepo "github.com/m04kA/SMC-PricingService/internal/infra/storage/usage"
	"github.com/m04kA/SMC-PricingService/pkg/ptr"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestService() (*Service, *usageRepo.MemoryRepository) {
	storage := usageRepo.NewMemoryRepository()
	clock := fixedClock{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	return NewService(storage, clock, nopLogger{}), storage
}

func voucherWithLimits(total, perCustomer *int) *domain.DiscountInstrument {
	return &domain.DiscountInstrument{
		ID:                    1,
		Kind:                  domain.KindVoucher,
		Code:                  "SPRING20",
		UsageLimit:            total,
		UsageLimitPerCustomer: perCustomer,
	}
}

func TestService_Reserve_WithinLimit(t *testing.T) {
	svc, _ := newTestService()
	voucher := voucherWithLimits(ptr.Ptr(2), nil)

	first, err := svc.Reserve(context.Background(), voucher, 10, 100, 1600)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(1600), first.DiscountApplied)

	second, err := svc.Reserve(context.Background(), voucher, 11, 101, 1600)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)

	_, err = svc.Reserve(context.Background(), voucher, 12, 102, 1600)
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestService_Reserve_PerCustomerLimit(t *testing.T) {
	svc, _ := newTestService()
	voucher := voucherWithLimits(nil, ptr.Ptr(1))

	_, err := svc.Reserve(context.Background(), voucher, 10, 100, 500)
	require.NoError(t, err)

	// второй раз тот же клиент — отказ
	_, err = svc.Reserve(context.Background(), voucher, 10, 101, 500)
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	// другой клиент проходит
	_, err = svc.Reserve(context.Background(), voucher, 11, 102, 500)
	require.NoError(t, err)
}

func TestService_Reserve_NoLimits(t *testing.T) {
	svc, _ := newTestService()
	voucher := voucherWithLimits(nil, nil)

	for i := 0; i < 50; i++ {
		_, err := svc.Reserve(context.Background(), voucher, int64(i), int64(100+i), 100)
		require.NoError(t, err)
	}

	count, err := svc.TotalUsages(context.Background(), voucher.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, count)
}

// Последний слот лимита достаётся ровно одной из двух конкурирующих горутин
func TestService_Reserve_ConcurrentLastSlot(t *testing.T) {
	svc, _ := newTestService()
	voucher := voucherWithLimits(ptr.Ptr(1), nil)

	var wg sync.WaitGroup
	results := make([]error, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Reserve(context.Background(), voucher, int64(10+i), int64(100+i), 1600)
		}(i)
	}
	wg.Wait()

	succeeded, rejected := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, ErrQuotaExceeded):
			rejected++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)

	count, err := svc.TotalUsages(context.Background(), voucher.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestService_Release_FreesQuota(t *testing.T) {
	svc, _ := newTestService()
	voucher := voucherWithLimits(ptr.Ptr(1), nil)

	_, err := svc.Reserve(context.Background(), voucher, 10, 100, 1600)
	require.NoError(t, err)

	_, err = svc.Reserve(context.Background(), voucher, 11, 101, 1600)
	require.ErrorIs(t, err, ErrQuotaExceeded)

	require.NoError(t, svc.Release(context.Background(), 100))

	// слот освободился
	_, err = svc.Reserve(context.Background(), voucher, 11, 101, 1600)
	require.NoError(t, err)
}

func TestService_Release_Idempotent(t *testing.T) {
	svc, _ := newTestService()
	voucher := voucherWithLimits(nil, nil)

	_, err := svc.Reserve(context.Background(), voucher, 10, 100, 1600)
	require.NoError(t, err)

	require.NoError(t, svc.Release(context.Background(), 100))
	require.NoError(t, svc.Release(context.Background(), 100))

	count, err := svc.TotalUsages(context.Background(), voucher.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

// Отменённые использования остаются в истории для аудита
func TestService_ListUsages_KeepsReversedRecords(t *testing.T) {
	svc, _ := newTestService()
	voucher := voucherWithLimits(nil, nil)

	_, err := svc.Reserve(context.Background(), voucher, 10, 100, 1600)
	require.NoError(t, err)
	_, err = svc.Reserve(context.Background(), voucher, 11, 101, 800)
	require.NoError(t, err)

	require.NoError(t, svc.Release(context.Background(), 100))

	records, err := svc.ListUsages(context.Background(), voucher.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.True(t, records[0].IsReversed())
	assert.False(t, records[1].IsReversed())
}
