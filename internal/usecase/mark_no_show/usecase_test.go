package mark_no_show

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PricingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-PricingService/internal/infra/storage/appointment"
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

	updatedID     int64
	updatedStatus domain.AppointmentStatus
}

func (r *fakeAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	appointment, ok := r.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *appointment
	return &copied, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	r.updatedID = id
	r.updatedStatus = status
	return nil
}

type fakeLedger struct {
	releasedIDs []int64
}

func (l *fakeLedger) Release(ctx context.Context, appointmentID int64) error {
	l.releasedIDs = append(l.releasedIDs, appointmentID)
	return nil
}

func repoWithStatus(status domain.AppointmentStatus) *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		appointments: map[int64]*domain.Appointment{
			100: {ID: 100, CustomerID: 10, Status: status},
		},
	}
}

func TestUseCase_Execute_ReleasePolicyEnabled(t *testing.T) {
	appointments := repoWithStatus(domain.StatusConfirmed)
	usageLedger := &fakeLedger{}
	uc := NewUseCase(appointments, usageLedger, fakeTxManager{}, true, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{AppointmentID: 100})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusNoShow), resp.Status)
	assert.True(t, resp.UsageReleased)
	assert.Equal(t, []int64{100}, usageLedger.releasedIDs)
	assert.Equal(t, domain.StatusNoShow, appointments.updatedStatus)
}

func TestUseCase_Execute_ReleasePolicyDisabled(t *testing.T) {
	appointments := repoWithStatus(domain.StatusConfirmed)
	usageLedger := &fakeLedger{}
	uc := NewUseCase(appointments, usageLedger, fakeTxManager{}, false, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{AppointmentID: 100})
	require.NoError(t, err)

	// ваучер "сгорает": использования не возвращаются
	assert.False(t, resp.UsageReleased)
	assert.Empty(t, usageLedger.releasedIDs)
	assert.Equal(t, domain.StatusNoShow, appointments.updatedStatus)
}

func TestUseCase_Execute_OnlyBeforeServiceStarts(t *testing.T) {
	for status, allowed := range map[domain.AppointmentStatus]bool{
		domain.StatusScheduled:  true,
		domain.StatusConfirmed:  true,
		domain.StatusInProgress: false,
		domain.StatusCompleted:  false,
		domain.StatusCanceled:   false,
	} {
		t.Run(string(status), func(t *testing.T) {
			appointments := repoWithStatus(status)
			uc := NewUseCase(appointments, &fakeLedger{}, fakeTxManager{}, true, nopLogger{})

			_, err := uc.Execute(context.Background(), &Request{AppointmentID: 100})
			if allowed {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, domain.ErrInvalidTransition)
				assert.Equal(t, int64(0), appointments.updatedID)
			}
		})
	}
}

func TestUseCase_Execute_NotFound(t *testing.T) {
	uc := NewUseCase(&fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{}}, &fakeLedger{}, fakeTxManager{}, true, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 404})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
