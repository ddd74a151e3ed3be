package ledger

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PricingService/internal/domain"
)

// UsageStorage интерфейс журнала использований
// Реализуется postgres-репозиторием и in-memory вариантом для однонодового режима
type UsageStorage interface {
	Reserve(ctx context.Context, record *domain.UsageRecord, totalLimit, perCustomerLimit *int) (*domain.UsageRecord, error)
	Release(ctx context.Context, appointmentID int64, at time.Time) error
	TotalUsages(ctx context.Context, instrumentID int64) (int, error)
	CustomerUsages(ctx context.Context, instrumentID, customerID int64) (int, error)
	ListByInstrument(ctx context.Context, instrumentID int64) ([]*domain.UsageRecord, error)
}

// TimeProvider интерфейс для получения текущего времени
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
