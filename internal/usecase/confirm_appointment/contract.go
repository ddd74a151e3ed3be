package confirm_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PricingService/internal/domain"
	"github.com/m04kA/SMC-PricingService/internal/service/eligibility"
	"github.com/m04kA/SMC-PricingService/internal/service/pricing"
)

// AppointmentRepository интерфейс репозитория записей
// GetByID внутри транзакции блокирует строку (FOR UPDATE)
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	CountCompletedByCustomer(ctx context.Context, customerID int64) (int, error)
	ConfirmPricing(ctx context.Context, id int64, finalPrice, totalDiscount int64, confirmedAt time.Time) error
}

// InstrumentRepository интерфейс репозитория скидочных инструментов
type InstrumentRepository interface {
	GetVoucherByCode(ctx context.Context, code string) (*domain.DiscountInstrument, error)
	ListActivePromotions(ctx context.Context) ([]*domain.DiscountInstrument, error)
}

// EligibilityEvaluator интерфейс проверки применимости инструмента
type EligibilityEvaluator interface {
	Evaluate(ctx context.Context, instrument *domain.DiscountInstrument, bctx eligibility.BookingContext) (eligibility.Result, error)
}

// PricingResolver интерфейс расчёта итоговой цены
type PricingResolver interface {
	Resolve(originalPrice int64, instruments []*domain.DiscountInstrument) (pricing.Result, error)
}

// UsageLedger интерфейс журнала использований
type UsageLedger interface {
	Reserve(ctx context.Context, instrument *domain.DiscountInstrument, customerID, appointmentID, discountApplied int64) (*domain.UsageRecord, error)
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
