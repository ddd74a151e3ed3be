package instruments

import (
	"context"

	"github.com/m04kA/SMC-PricingService/internal/domain"
)

// InstrumentRepository интерфейс репозитория скидочных инструментов
type InstrumentRepository interface {
	Create(ctx context.Context, instrument *domain.DiscountInstrument) (*domain.DiscountInstrument, error)
	GetByID(ctx context.Context, id int64) (*domain.DiscountInstrument, error)
	GetVoucherByCode(ctx context.Context, code string) (*domain.DiscountInstrument, error)
	ListActivePromotions(ctx context.Context) ([]*domain.DiscountInstrument, error)
}

// UsageReader интерфейс чтения журнала использований
type UsageReader interface {
	ListUsages(ctx context.Context, instrumentID int64) ([]*domain.UsageRecord, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
