package cancel_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PricingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-PricingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-PricingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAppointmentRepo struct {
	appointments map[int64]*domain.Appointment

	cancelledID  int64
	cancelReason *string
	cancelFee    *int64
}

func (r *fakeAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	appointment, ok := r.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *appointment
	return &copied, nil
}

func (r *fakeAppointmentRepo) Cancel(ctx context.Context, id int64, reason *string, fee *int64, cancelledAt time.Time) error {
	r.cancelledID = id
	r.cancelReason = reason
	r.cancelFee = fee
	return nil
}

type fakeLedger struct {
	releasedIDs []int64
}

func (l *fakeLedger) Release(ctx context.Context, appointmentID int64) error {
	l.releasedIDs = append(l.releasedIDs, appointmentID)
	return nil
}

func appointmentWithStatus(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{ID: 100, CustomerID: 10, Status: status}
}

func newCancelUseCase(appointments *fakeAppointmentRepo, usageLedger *fakeLedger) *UseCase {
	return NewUseCase(appointments, usageLedger, fakeTxManager{}, nopLogger{})
}

func TestUseCase_Execute_CancelConfirmedReleasesUsage(t *testing.T) {
	appointments := &fakeAppointmentRepo{
		appointments: map[int64]*domain.Appointment{100: appointmentWithStatus(domain.StatusConfirmed)},
	}
	usageLedger := &fakeLedger{}

	resp, err := newCancelUseCase(appointments, usageLedger).Execute(context.Background(), &Request{
		AppointmentID: 100,
		Reason:        ptr.Ptr("клиент попросил перенести"),
		Fee:           ptr.Ptr(int64(500)),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCanceled), resp.Status)
	assert.Equal(t, []int64{100}, usageLedger.releasedIDs)
	assert.Equal(t, int64(100), appointments.cancelledID)
	require.NotNil(t, appointments.cancelFee)
	assert.Equal(t, int64(500), *appointments.cancelFee)
}

func TestUseCase_Execute_CancelFromAnyActiveStatus(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{
		domain.StatusScheduled,
		domain.StatusConfirmed,
		domain.StatusInProgress,
	} {
		t.Run(string(status), func(t *testing.T) {
			appointments := &fakeAppointmentRepo{
				appointments: map[int64]*domain.Appointment{100: appointmentWithStatus(status)},
			}

			_, err := newCancelUseCase(appointments, &fakeLedger{}).Execute(context.Background(), &Request{AppointmentID: 100})
			require.NoError(t, err)
		})
	}
}

func TestUseCase_Execute_TerminalStatusRejected(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{
		domain.StatusCompleted,
		domain.StatusCanceled,
		domain.StatusNoShow,
	} {
		t.Run(string(status), func(t *testing.T) {
			appointments := &fakeAppointmentRepo{
				appointments: map[int64]*domain.Appointment{100: appointmentWithStatus(status)},
			}
			usageLedger := &fakeLedger{}

			_, err := newCancelUseCase(appointments, usageLedger).Execute(context.Background(), &Request{AppointmentID: 100})
			require.ErrorIs(t, err, domain.ErrInvalidTransition)

			// запись не тронута
			assert.Empty(t, usageLedger.releasedIDs)
			assert.Equal(t, int64(0), appointments.cancelledID)
		})
	}
}

func TestUseCase_Execute_NegativeFeeRejected(t *testing.T) {
	_, err := newCancelUseCase(&fakeAppointmentRepo{}, &fakeLedger{}).Execute(context.Background(), &Request{
		AppointmentID: 100,
		Fee:           ptr.Ptr(int64(-1)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_NotFound(t *testing.T) {
	_, err := newCancelUseCase(&fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{}}, &fakeLedger{}).
		Execute(context.Background(), &Request{AppointmentID: 404})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
