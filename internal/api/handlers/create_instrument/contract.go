package create_instrument

import (
	"context"

	"github.com/m04kA/SMC-PricingService/internal/domain"
)

type InstrumentService interface {
	Create(ctx context.Context, instrument *domain.DiscountInstrument) (*domain.DiscountInstrument, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
