package quote_price

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PricingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-PricingService/internal/infra/storage/appointment"
	instrumentRepo "github.com/m04kA/SMC-PricingService/internal/infra/storage/instrument"
	"github.com/m04kA/SMC-PricingService/internal/service/eligibility"
)

// UseCase use case для предварительного расчёта цены
// Повторяет логику подтверждения без резервирования и заморозки: удобно
// показывать клиенту цену и диагностику применимости до решения
type UseCase struct {
	appointmentRepo AppointmentRepository
	instrumentRepo  InstrumentRepository
	evaluator       EligibilityEvaluator
	resolver        PricingResolver
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	instrumentRepo InstrumentRepository,
	evaluator EligibilityEvaluator,
	resolver PricingResolver,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		instrumentRepo:  instrumentRepo,
		evaluator:       evaluator,
		resolver:        resolver,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case предварительного расчёта цены
// Неприменимые инструменты не являются ошибкой: их причины возвращаются
// в диагностике
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuotePrice: appointment=%d, voucher=%v", req.AppointmentID, req.VoucherCode)

	// 1. Валидация входных данных
	if req.AppointmentID <= 0 {
		uc.logger.Warn("QuotePrice: invalid appointment id=%d", req.AppointmentID)
		return nil, fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if req.VoucherCode != nil && *req.VoucherCode == "" {
		return nil, fmt.Errorf("%w: voucherCode must not be empty", ErrInvalidInput)
	}

	// 2. Загружаем запись
	appointment, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("QuotePrice: appointment=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("QuotePrice: failed to get appointment=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// 3. Собираем кандидатов: ваучер первым, затем активные акции
	candidates := make([]*domain.DiscountInstrument, 0, 4)
	if req.VoucherCode != nil {
		voucher, err := uc.instrumentRepo.GetVoucherByCode(ctx, *req.VoucherCode)
		if err != nil {
			if errors.Is(err, instrumentRepo.ErrInstrumentNotFound) {
				uc.logger.Warn("QuotePrice: voucher code=%q not found", *req.VoucherCode)
				return nil, ErrVoucherNotFound
			}
			uc.logger.Error("QuotePrice: failed to get voucher: %v", err)
			return nil, fmt.Errorf("%w: failed to get voucher: %v", ErrInternal, err)
		}
		candidates = append(candidates, voucher)
	}

	promotions, err := uc.instrumentRepo.ListActivePromotions(ctx)
	if err != nil {
		uc.logger.Error("QuotePrice: failed to list promotions: %v", err)
		return nil, fmt.Errorf("%w: failed to list promotions: %v", ErrInternal, err)
	}
	candidates = append(candidates, promotions...)

	// 4. Контекст записи для проверки применимости
	startsAt, err := appointment.StartsAt()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve appointment start: %v", ErrInternal, err)
	}

	priorCount, err := uc.appointmentRepo.CountCompletedByCustomer(ctx, appointment.CustomerID)
	if err != nil {
		uc.logger.Error("QuotePrice: failed to count completed appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to count completed appointments: %v", ErrInternal, err)
	}

	bctx := eligibility.BookingContext{
		Now:                   startsAt,
		CustomerID:            appointment.CustomerID,
		PriorAppointmentCount: priorCount,
		PurchaseAmount:        appointment.OriginalPrice,
	}

	// 5. Проверяем всех кандидатов, собирая диагностику
	diagnostics := make([]CandidateDiagnostic, 0, len(candidates))
	eligible := make([]*domain.DiscountInstrument, 0, len(candidates))
	for _, candidate := range candidates {
		result, err := uc.evaluator.Evaluate(ctx, candidate, bctx)
		if err != nil {
			uc.logger.Error("QuotePrice: failed to evaluate instrument id=%d: %v", candidate.ID, err)
			return nil, fmt.Errorf("%w: failed to evaluate instrument: %v", ErrInternal, err)
		}

		diagnostics = append(diagnostics, CandidateDiagnostic{
			InstrumentID: candidate.ID,
			Kind:         string(candidate.Kind),
			Name:         candidate.Name,
			Eligible:     result.Eligible,
			Reason:       string(result.Reason),
		})

		if result.Eligible {
			eligible = append(eligible, candidate)
		}
	}

	// 6. Рассчитываем цену по применимым инструментам
	result, err := uc.resolver.Resolve(appointment.OriginalPrice, eligible)
	if err != nil {
		uc.logger.Error("QuotePrice: failed to resolve price for appointment=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to resolve price: %v", ErrInternal, err)
	}

	// 7. Заполняем применённые суммы в диагностике
	appliedByID := make(map[int64]int64, len(result.Applied))
	for _, discount := range result.Applied {
		appliedByID[discount.InstrumentID] = discount.Amount
	}
	for i := range diagnostics {
		diagnostics[i].Amount = appliedByID[diagnostics[i].InstrumentID]
	}

	uc.logger.Info("QuotePrice: appointment=%d, original=%d, final=%d, candidates=%d",
		req.AppointmentID, result.OriginalPrice, result.FinalPrice, len(diagnostics))

	return &Response{
		AppointmentID:       appointment.ID,
		OriginalPrice:       result.OriginalPrice,
		FinalPrice:          result.FinalPrice,
		TotalDiscountAmount: result.TotalDiscountAmount,
		Candidates:          diagnostics,
	}, nil
}
