package complete_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PricingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	CompleteWithCommission(ctx context.Context, id int64, split *domain.CommissionSplit, completedAt time.Time) error
}

// CommissionConfigRepository интерфейс репозитория конфигураций комиссии
type CommissionConfigRepository interface {
	GetByServiceID(ctx context.Context, serviceID int64) (*domain.CommissionConfig, error)
}

// CommissionCalculator интерфейс расчёта комиссии
type CommissionCalculator interface {
	Split(baseAmount int64, cfg *domain.CommissionConfig, professionalID int64) (*domain.CommissionSplit, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
