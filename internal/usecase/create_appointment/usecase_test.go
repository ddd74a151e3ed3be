package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PricingService/internal/domain"
	"github.com/m04kA/SMC-PricingService/internal/integrations/catalogservice"
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
	created *domain.Appointment
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	appointment.ID = 100
	appointment.CreatedAt = time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	appointment.UpdatedAt = appointment.CreatedAt
	r.created = appointment
	return appointment, nil
}

type fakeCatalog struct {
	services      map[int64]*catalogservice.CatalogService
	professionals map[int64]*catalogservice.Professional
	customers     map[int64]*catalogservice.Customer
}

func (c *fakeCatalog) GetService(ctx context.Context, serviceID int64) (*catalogservice.CatalogService, error) {
	service, ok := c.services[serviceID]
	if !ok {
		return nil, catalogservice.ErrServiceNotFound
	}
	return service, nil
}

func (c *fakeCatalog) GetProfessional(ctx context.Context, professionalID int64) (*catalogservice.Professional, error) {
	professional, ok := c.professionals[professionalID]
	if !ok {
		return nil, catalogservice.ErrProfessionalNotFound
	}
	return professional, nil
}

func (c *fakeCatalog) GetCustomer(ctx context.Context, customerID int64) (*catalogservice.Customer, error) {
	customer, ok := c.customers[customerID]
	if !ok {
		return nil, catalogservice.ErrCustomerNotFound
	}
	return customer, nil
}

func fullCatalog() *fakeCatalog {
	return &fakeCatalog{
		services: map[int64]*catalogservice.CatalogService{
			30: {ID: 30, Name: "Мужская стрижка", BasePrice: 3500, DurationMinutes: 45, IsActive: true},
		},
		professionals: map[int64]*catalogservice.Professional{
			20: {ID: 20, Name: "Анна", IsActive: true},
		},
		customers: map[int64]*catalogservice.Customer{
			10: {ID: 10, Name: "Иван Петров", Phone: "+79990001122"},
		},
	}
}

func validRequest() *Request {
	return &Request{
		CustomerID:     10,
		ProfessionalID: 20,
		ServiceID:      30,
		ScheduledDate:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:      types.TimeString("14:00"),
	}
}

func newCreateUseCase(repo *fakeAppointmentRepo, catalog *fakeCatalog) *UseCase {
	uc := NewUseCase(repo, catalog, nopLogger{})
	uc.timeProvider = fixedClock{now: time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)}
	return uc
}

func TestUseCase_Execute_CreatesScheduledAppointment(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	resp, err := newCreateUseCase(repo, fullCatalog()).Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	assert.Equal(t, "Мужская стрижка", resp.ServiceName)
	assert.Equal(t, "Иван Петров", resp.CustomerName)
	assert.Equal(t, 45, resp.DurationMinutes)

	// цена без скидок, оплата целиком впереди
	assert.Equal(t, int64(3500), resp.OriginalPrice)
	assert.Equal(t, int64(3500), resp.FinalPrice)
	assert.Equal(t, int64(0), resp.TotalDiscountAmount)
	assert.Equal(t, "cash", resp.PaymentMethod)
	assert.Equal(t, string(domain.PaymentStatusPending), resp.PaymentStatus)
	assert.Equal(t, int64(3500), resp.RemainingAmount)
}

func TestUseCase_Execute_SameDayAllowed(t *testing.T) {
	req := validRequest()
	req.ScheduledDate = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	_, err := newCreateUseCase(&fakeAppointmentRepo{}, fullCatalog()).Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestUseCase_Execute_PastDateRejected(t *testing.T) {
	req := validRequest()
	req.ScheduledDate = time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	_, err := newCreateUseCase(&fakeAppointmentRepo{}, fullCatalog()).Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUseCase_Execute_InactiveService(t *testing.T) {
	catalog := fullCatalog()
	catalog.services[30].IsActive = false

	_, err := newCreateUseCase(&fakeAppointmentRepo{}, catalog).Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceInactive)
}

func TestUseCase_Execute_UnknownProfessional(t *testing.T) {
	req := validRequest()
	req.ProfessionalID = 999

	_, err := newCreateUseCase(&fakeAppointmentRepo{}, fullCatalog()).Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestUseCase_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"zero customer", func(req *Request) { req.CustomerID = 0 }},
		{"zero service", func(req *Request) { req.ServiceID = 0 }},
		{"missing start time", func(req *Request) { req.StartTime = "" }},
		{"malformed start time", func(req *Request) { req.StartTime = "25:99" }},
		{"unsupported payment method", func(req *Request) { req.PaymentMethod = "crypto" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := newCreateUseCase(&fakeAppointmentRepo{}, fullCatalog()).Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
