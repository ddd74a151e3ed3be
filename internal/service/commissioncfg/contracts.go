package commissioncfg

import (
	"context"

	"github.com/m04kA/SMC-PricingService/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигураций комиссии
type ConfigRepository interface {
	GetByServiceID(ctx context.Context, serviceID int64) (*domain.CommissionConfig, error)
	Upsert(ctx context.Context, cfg *domain.CommissionConfig) (*domain.CommissionConfig, error)
}

// TransactionManager интерфейс менеджера транзакций
// Upsert меняет две таблицы и должен выполняться атомарно
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
