package get_commission_config

import (
	"context"

	"github.com/m04kA/SMC-PricingService/internal/domain"
)

type CommissionConfigService interface {
	GetByService(ctx context.Context, serviceID int64) (*domain.CommissionConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
