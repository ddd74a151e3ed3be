package update_commission_config

import (
	"context"

	"github.com/m04kA/SMC-PricingService/internal/domain"
)

type CommissionConfigService interface {
	Upsert(ctx context.Context, cfg *domain.CommissionConfig) (*domain.CommissionConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
