package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PricingService/internal/domain"
	"github.com/m04kA/SMC-PricingService/internal/integrations/catalogservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// CatalogServiceClient интерфейс клиента каталога услуг и персонала
type CatalogServiceClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.CatalogService, error)
	GetProfessional(ctx context.Context, professionalID int64) (*catalogservice.Professional, error)
	GetCustomer(ctx context.Context, customerID int64) (*catalogservice.Customer, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
