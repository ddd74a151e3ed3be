package get_customer_appointments

import (
	"context"

	"github.com/m04kA/SMC-PricingService/internal/domain"
)

type AppointmentService interface {
	GetCustomerAppointments(ctx context.Context, filter domain.CustomerAppointmentsFilter) ([]*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
