package get_instrument_usages

import (
	"context"

	"github.com/m04kA/SMC-PricingService/internal/domain"
)

type InstrumentService interface {
	ListUsages(ctx context.Context, instrumentID int64) ([]*domain.UsageRecord, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
