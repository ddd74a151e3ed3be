package quote_price

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PricingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-PricingService/internal/infra/storage/appointment"
	instrumentRepo "github.com/m04kA/SMC-PricingService/internal/infra/storage/instrument"
	usageRepo "github.com/m04kA/SMC-PricingService/internal/infra/storage/usage"
	"github.com/m04kA/SMC-PricingService/internal/service/eligibility"
	"github.com/m04kA/SMC-PricingService/internal/service/ledger"
	"github.com/m04kA/SMC-PricingService/internal/service/pricing"
	"github.com/m04kA/SMC-PricingService/pkg/ptr"
	"github.com/m04kA/SMC-PricingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type fakeAppointmentRepo struct {
	appointments map[int64]*domain.Appointment
}

func (r *fakeAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	appointment, ok := r.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *appointment
	return &copied, nil
}

func (r *fakeAppointmentRepo) CountCompletedByCustomer(ctx context.Context, customerID int64) (int, error) {
	return 0, nil
}

type fakeInstrumentRepo struct {
	vouchers   map[string]*domain.DiscountInstrument
	promotions []*domain.DiscountInstrument
}

func (r *fakeInstrumentRepo) GetVoucherByCode(ctx context.Context, code string) (*domain.DiscountInstrument, error) {
	voucher, ok := r.vouchers[code]
	if !ok {
		return nil, instrumentRepo.ErrInstrumentNotFound
	}
	return voucher, nil
}

func (r *fakeInstrumentRepo) ListActivePromotions(ctx context.Context) ([]*domain.DiscountInstrument, error) {
	return r.promotions, nil
}

var slotDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func scheduledAppointment(price int64) *domain.Appointment {
	return &domain.Appointment{
		ID:            100,
		CustomerID:    10,
		ScheduledDate: slotDate,
		StartTime:     types.TimeString("14:00"),
		Status:        domain.StatusScheduled,
		OriginalPrice: price,
		FinalPrice:    price,
	}
}

func newQuoteUseCase(appointments *fakeAppointmentRepo, instruments *fakeInstrumentRepo) (*UseCase, *ledger.Service) {
	clock := fixedClock{now: time.Date(2026, 3, 9, 18, 0, 0, 0, time.UTC)}
	ledgerSvc := ledger.NewService(usageRepo.NewMemoryRepository(), clock, nopLogger{})
	evaluator := eligibility.NewEvaluator(ledgerSvc)
	resolver, _ := pricing.NewResolver(pricing.StrategyBestSingle)

	return NewUseCase(appointments, instruments, evaluator, resolver, nopLogger{}), ledgerSvc
}

func TestUseCase_Execute_QuoteWithDiagnostics(t *testing.T) {
	expired := &domain.DiscountInstrument{
		ID:           2,
		Kind:         domain.KindPromotion,
		Name:         "Прошлогодняя акция",
		DiscountType: domain.DiscountPercentage,
		Value:        50,
		IsActive:     true,
		StartDate:    slotDate.AddDate(-1, 0, 0),
		EndDate:      slotDate.AddDate(0, -1, 0),
	}

	appointments := &fakeAppointmentRepo{
		appointments: map[int64]*domain.Appointment{100: scheduledAppointment(8000)},
	}
	instruments := &fakeInstrumentRepo{
		vouchers: map[string]*domain.DiscountInstrument{
			"SPRING20": {
				ID:           1,
				Kind:         domain.KindVoucher,
				Name:         "Весенний ваучер",
				Code:         "SPRING20",
				DiscountType: domain.DiscountPercentage,
				Value:        20,
				IsActive:     true,
				StartDate:    slotDate.AddDate(0, -1, 0),
				EndDate:      slotDate.AddDate(0, 1, 0),
			},
		},
		promotions: []*domain.DiscountInstrument{expired},
	}

	uc, ledgerSvc := newQuoteUseCase(appointments, instruments)

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 100,
		VoucherCode:   ptr.Ptr("SPRING20"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(8000), resp.OriginalPrice)
	assert.Equal(t, int64(6400), resp.FinalPrice)
	assert.Equal(t, int64(1600), resp.TotalDiscountAmount)

	require.Len(t, resp.Candidates, 2)

	voucherDiag := resp.Candidates[0]
	assert.True(t, voucherDiag.Eligible)
	assert.Empty(t, voucherDiag.Reason)
	assert.Equal(t, int64(1600), voucherDiag.Amount)

	promoDiag := resp.Candidates[1]
	assert.False(t, promoDiag.Eligible)
	assert.Equal(t, string(eligibility.ReasonOutsideDateRange), promoDiag.Reason)
	assert.Equal(t, int64(0), promoDiag.Amount)

	// предпросмотр без побочных эффектов
	count, err := ledgerSvc.TotalUsages(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestUseCase_Execute_NoCandidates(t *testing.T) {
	appointments := &fakeAppointmentRepo{
		appointments: map[int64]*domain.Appointment{100: scheduledAppointment(5000)},
	}
	uc, _ := newQuoteUseCase(appointments, &fakeInstrumentRepo{})

	resp, err := uc.Execute(context.Background(), &Request{AppointmentID: 100})
	require.NoError(t, err)

	assert.Equal(t, int64(5000), resp.FinalPrice)
	assert.Equal(t, int64(0), resp.TotalDiscountAmount)
	assert.Empty(t, resp.Candidates)
}

func TestUseCase_Execute_VoucherNotFound(t *testing.T) {
	appointments := &fakeAppointmentRepo{
		appointments: map[int64]*domain.Appointment{100: scheduledAppointment(5000)},
	}
	uc, _ := newQuoteUseCase(appointments, &fakeInstrumentRepo{vouchers: map[string]*domain.DiscountInstrument{}})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 100,
		VoucherCode:   ptr.Ptr("MISSING"),
	})
	assert.ErrorIs(t, err, ErrVoucherNotFound)
}

func TestUseCase_Execute_NotFound(t *testing.T) {
	uc, _ := newQuoteUseCase(&fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{}}, &fakeInstrumentRepo{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 404})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
