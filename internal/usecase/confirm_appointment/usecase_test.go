package confirm_appointment

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

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAppointmentRepo struct {
	appointments   map[int64]*domain.Appointment
	completedCount int

	confirmedID       int64
	confirmedFinal    int64
	confirmedDiscount int64
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
	return r.completedCount, nil
}

func (r *fakeAppointmentRepo) ConfirmPricing(ctx context.Context, id int64, finalPrice, totalDiscount int64, confirmedAt time.Time) error {
	r.confirmedID = id
	r.confirmedFinal = finalPrice
	r.confirmedDiscount = totalDiscount
	return nil
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

// Слот записи: вторник 10 марта 2026, 14:00
var slotDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func scheduledAppointment(price int64) *domain.Appointment {
	return &domain.Appointment{
		ID:             100,
		CustomerID:     10,
		ProfessionalID: 20,
		ServiceID:      30,
		ScheduledDate:  slotDate,
		StartTime:      types.TimeString("14:00"),
		Status:         domain.StatusScheduled,
		OriginalPrice:  price,
		FinalPrice:     price,
	}
}

func activeVoucher(code string, discountType domain.DiscountType, value float64) *domain.DiscountInstrument {
	return &domain.DiscountInstrument{
		ID:           1,
		Kind:         domain.KindVoucher,
		Name:         "Весенний ваучер",
		Code:         code,
		DiscountType: discountType,
		Value:        value,
		IsActive:     true,
		StartDate:    slotDate.AddDate(0, -1, 0),
		EndDate:      slotDate.AddDate(0, 1, 0),
	}
}

func newConfirmUseCase(appointments *fakeAppointmentRepo, instruments *fakeInstrumentRepo) (*UseCase, *ledger.Service) {
	clock := fixedClock{now: time.Date(2026, 3, 9, 18, 0, 0, 0, time.UTC)}
	ledgerSvc := ledger.NewService(usageRepo.NewMemoryRepository(), clock, nopLogger{})
	evaluator := eligibility.NewEvaluator(ledgerSvc)
	resolver, _ := pricing.NewResolver(pricing.StrategyBestSingle)

	uc := NewUseCase(appointments, instruments, evaluator, resolver, ledgerSvc, fakeTxManager{}, nopLogger{})
	uc.timeProvider = clock
	return uc, ledgerSvc
}

func TestUseCase_Execute_ConfirmWithVoucher(t *testing.T) {
	appointments := &fakeAppointmentRepo{
		appointments: map[int64]*domain.Appointment{100: scheduledAppointment(8000)},
	}
	instruments := &fakeInstrumentRepo{
		vouchers: map[string]*domain.DiscountInstrument{
			"SPRING20": activeVoucher("SPRING20", domain.DiscountPercentage, 20),
		},
	}
	uc, ledgerSvc := newConfirmUseCase(appointments, instruments)

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 100,
		VoucherCode:   ptr.Ptr("SPRING20"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(8000), resp.OriginalPrice)
	assert.Equal(t, int64(6400), resp.FinalPrice)
	assert.Equal(t, int64(1600), resp.TotalDiscountAmount)
	require.Len(t, resp.AppliedDiscounts, 1)
	assert.Equal(t, int64(1), resp.AppliedDiscounts[0].InstrumentID)
	assert.Equal(t, int64(1600), resp.AppliedDiscounts[0].Amount)

	// цена заморожена в хранилище
	assert.Equal(t, int64(100), appointments.confirmedID)
	assert.Equal(t, int64(6400), appointments.confirmedFinal)

	// использование зарезервировано
	count, err := ledgerSvc.TotalUsages(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUseCase_Execute_NoInstruments(t *testing.T) {
	appointments := &fakeAppointmentRepo{
		appointments: map[int64]*domain.Appointment{100: scheduledAppointment(5000)},
	}
	uc, _ := newConfirmUseCase(appointments, &fakeInstrumentRepo{})

	resp, err := uc.Execute(context.Background(), &Request{AppointmentID: 100})
	require.NoError(t, err)

	assert.Equal(t, int64(5000), resp.FinalPrice)
	assert.Equal(t, int64(0), resp.TotalDiscountAmount)
	assert.Empty(t, resp.AppliedDiscounts)
	assert.Equal(t, int64(5000), appointments.confirmedFinal)
}

func TestUseCase_Execute_VoucherNotFound(t *testing.T) {
	appointments := &fakeAppointmentRepo{
		appointments: map[int64]*domain.Appointment{100: scheduledAppointment(8000)},
	}
	uc, _ := newConfirmUseCase(appointments, &fakeInstrumentRepo{vouchers: map[string]*domain.DiscountInstrument{}})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 100,
		VoucherCode:   ptr.Ptr("MISSING"),
	})
	assert.ErrorIs(t, err, ErrVoucherNotFound)
}

func TestUseCase_Execute_IneligibleVoucherFailsConfirm(t *testing.T) {
	voucher := activeVoucher("EXPIRED", domain.DiscountPercentage, 20)
	voucher.EndDate = slotDate.AddDate(0, 0, -1)

	appointments := &fakeAppointmentRepo{
		appointments: map[int64]*domain.Appointment{100: scheduledAppointment(8000)},
	}
	instruments := &fakeInstrumentRepo{
		vouchers: map[string]*domain.DiscountInstrument{"EXPIRED": voucher},
	}
	uc, ledgerSvc := newConfirmUseCase(appointments, instruments)

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 100,
		VoucherCode:   ptr.Ptr("EXPIRED"),
	})
	require.ErrorIs(t, err, ErrVoucherIneligible)

	var ineligible *IneligibleVoucherError
	require.ErrorAs(t, err, &ineligible)
	assert.Equal(t, eligibility.ReasonOutsideDateRange, ineligible.Reason)

	// ничего не зарезервировано и не заморожено
	assert.Equal(t, int64(0), appointments.confirmedID)
	count, _ := ledgerSvc.TotalUsages(context.Background(), voucher.ID)
	assert.Equal(t, 0, count)
}

func TestUseCase_Execute_IneligiblePromotionSkipped(t *testing.T) {
	promotion := activeVoucher("", domain.DiscountPercentage, 50)
	promotion.ID = 2
	promotion.Kind = domain.KindPromotion
	promotion.IsActive = true
	// акция только по понедельникам, слот во вторник
	promotion.DayOfWeekRestrictions = []time.Weekday{time.Monday}

	appointments := &fakeAppointmentRepo{
		appointments: map[int64]*domain.Appointment{100: scheduledAppointment(8000)},
	}
	instruments := &fakeInstrumentRepo{promotions: []*domain.DiscountInstrument{promotion}}
	uc, _ := newConfirmUseCase(appointments, instruments)

	resp, err := uc.Execute(context.Background(), &Request{AppointmentID: 100})
	require.NoError(t, err)

	assert.Equal(t, int64(8000), resp.FinalPrice)
	assert.Empty(t, resp.AppliedDiscounts)
}

func TestUseCase_Execute_BestSingleAcrossVoucherAndPromotion(t *testing.T) {
	promotion := activeVoucher("", domain.DiscountFixedAmount, 3000)
	promotion.ID = 2
	promotion.Kind = domain.KindPromotion

	appointments := &fakeAppointmentRepo{
		appointments: map[int64]*domain.Appointment{100: scheduledAppointment(8000)},
	}
	instruments := &fakeInstrumentRepo{
		vouchers: map[string]*domain.DiscountInstrument{
			"SPRING20": activeVoucher("SPRING20", domain.DiscountPercentage, 20),
		},
		promotions: []*domain.DiscountInstrument{promotion},
	}
	uc, ledgerSvc := newConfirmUseCase(appointments, instruments)

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 100,
		VoucherCode:   ptr.Ptr("SPRING20"),
	})
	require.NoError(t, err)

	// акция на 3000 выигрывает у ваучера на 1600
	require.Len(t, resp.AppliedDiscounts, 1)
	assert.Equal(t, int64(2), resp.AppliedDiscounts[0].InstrumentID)
	assert.Equal(t, int64(5000), resp.FinalPrice)

	// зарезервирована только применённая акция
	voucherCount, _ := ledgerSvc.TotalUsages(context.Background(), 1)
	promoCount, _ := ledgerSvc.TotalUsages(context.Background(), 2)
	assert.Equal(t, 0, voucherCount)
	assert.Equal(t, 1, promoCount)
}

func TestUseCase_Execute_QuotaExceededLeavesScheduled(t *testing.T) {
	voucher := activeVoucher("LAST1", domain.DiscountPercentage, 10)
	voucher.UsageLimit = ptr.Ptr(1)

	appointments := &fakeAppointmentRepo{
		appointments: map[int64]*domain.Appointment{100: scheduledAppointment(8000)},
	}
	instruments := &fakeInstrumentRepo{
		vouchers: map[string]*domain.DiscountInstrument{"LAST1": voucher},
	}
	uc, ledgerSvc := newConfirmUseCase(appointments, instruments)

	// съедаем последний слот другой записью: проверка применимости при
	// подтверждении увидит исчерпанный лимит
	_, err := ledgerSvc.Reserve(context.Background(), voucher, 99, 999, 800)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{
		AppointmentID: 100,
		VoucherCode:   ptr.Ptr("LAST1"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVoucherIneligible)

	// цена не заморожена
	assert.Equal(t, int64(0), appointments.confirmedID)
}

func TestUseCase_Execute_InvalidTransition(t *testing.T) {
	appointment := scheduledAppointment(8000)
	appointment.Status = domain.StatusCompleted

	appointments := &fakeAppointmentRepo{
		appointments: map[int64]*domain.Appointment{100: appointment},
	}
	uc, _ := newConfirmUseCase(appointments, &fakeInstrumentRepo{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 100})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	var transition *domain.InvalidTransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, domain.StatusCompleted, transition.Current)
	assert.Equal(t, domain.StatusConfirmed, transition.Requested)
}

func TestUseCase_Execute_AppointmentNotFound(t *testing.T) {
	uc, _ := newConfirmUseCase(&fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{}}, &fakeInstrumentRepo{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 404})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
