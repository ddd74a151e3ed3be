package confirm_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PricingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-PricingService/internal/infra/storage/appointment"
	instrumentRepo "github.com/m04kA/SMC-PricingService/internal/infra/storage/instrument"
	"github.com/m04kA/SMC-PricingService/internal/service/eligibility"
	"github.com/m04kA/SMC-PricingService/internal/service/ledger"
)

// UseCase use case для подтверждения записи
// Вся операция выполняется в одной сериализуемой транзакции: проверка
// применимости, расчёт цены, резервирование использований и заморозка
// итоговой цены либо фиксируются вместе, либо откатываются вместе
type UseCase struct {
	appointmentRepo AppointmentRepository
	instrumentRepo  InstrumentRepository
	evaluator       EligibilityEvaluator
	resolver        PricingResolver
	usageLedger     UsageLedger
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	instrumentRepo InstrumentRepository,
	evaluator EligibilityEvaluator,
	resolver PricingResolver,
	usageLedger UsageLedger,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		instrumentRepo:  instrumentRepo,
		evaluator:       evaluator,
		resolver:        resolver,
		usageLedger:     usageLedger,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case подтверждения записи
// Запрошенный неприменимый ваучер проваливает подтверждение с кодом причины;
// неприменимые акции молча пропускаются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmAppointment: appointment=%d, voucher=%v", req.AppointmentID, req.VoucherCode)

	// 1. Валидация входных данных
	if req.AppointmentID <= 0 {
		uc.logger.Warn("ConfirmAppointment: invalid appointment id=%d", req.AppointmentID)
		return nil, fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if req.VoucherCode != nil && *req.VoucherCode == "" {
		return nil, fmt.Errorf("%w: voucherCode must not be empty", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var response *Response

	// 2. Сериализуемая транзакция: от загрузки записи до заморозки цены
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Загружаем запись с блокировкой строки
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2.2. Подтверждать можно только запланированную запись
		if appointment.Status != domain.StatusScheduled {
			return domain.NewInvalidTransitionError(appointment.Status, domain.StatusConfirmed)
		}

		// 2.3. Собираем кандидатов: запрошенный ваучер идёт первым,
		// за ним активные акции — порядок важен при равных скидках
		candidates, voucher, err := uc.gatherCandidates(txCtx, req.VoucherCode)
		if err != nil {
			return err
		}

		// 2.4. Контекст записи для проверки применимости
		// Ограничения по дню недели и времени проверяются относительно
		// слота записи, а не момента подтверждения
		startsAt, err := appointment.StartsAt()
		if err != nil {
			return fmt.Errorf("%w: failed to resolve appointment start: %v", ErrInternal, err)
		}

		priorCount, err := uc.appointmentRepo.CountCompletedByCustomer(txCtx, appointment.CustomerID)
		if err != nil {
			return fmt.Errorf("%w: failed to count completed appointments: %v", ErrInternal, err)
		}

		bctx := eligibility.BookingContext{
			Now:                   startsAt,
			CustomerID:            appointment.CustomerID,
			PriorAppointmentCount: priorCount,
			PurchaseAmount:        appointment.OriginalPrice,
		}

		// 2.5. Проверяем применимость кандидатов
		eligible, err := uc.filterEligible(txCtx, candidates, voucher, bctx)
		if err != nil {
			return err
		}

		// 2.6. Рассчитываем итоговую цену
		result, err := uc.resolver.Resolve(appointment.OriginalPrice, eligible)
		if err != nil {
			return fmt.Errorf("%w: failed to resolve price: %v", ErrInternal, err)
		}

		// 2.7. Резервируем использование для каждой применённой скидки
		byID := instrumentsByID(candidates)
		for _, discount := range result.Applied {
			instrument := byID[discount.InstrumentID]
			if _, err := uc.usageLedger.Reserve(txCtx, instrument, appointment.CustomerID, appointment.ID, discount.Amount); err != nil {
				if errors.Is(err, ledger.ErrQuotaExceeded) {
					return ErrQuotaExceeded
				}
				return fmt.Errorf("%w: failed to reserve usage: %v", ErrInternal, err)
			}
		}

		// 2.8. Замораживаем итоговую цену и переводим запись в confirmed
		if err := uc.appointmentRepo.ConfirmPricing(txCtx, appointment.ID, result.FinalPrice, result.TotalDiscountAmount, now); err != nil {
			return fmt.Errorf("%w: failed to confirm pricing: %v", ErrInternal, err)
		}

		response = buildResponse(appointment, result, byID, now)
		return nil
	})

	if err != nil {
		uc.logUseCaseError(req, err)
		return nil, err
	}

	uc.logger.Info("ConfirmAppointment: confirmed appointment=%d, final=%d, discount=%d, applied=%d",
		response.ID, response.FinalPrice, response.TotalDiscountAmount, len(response.AppliedDiscounts))
	return response, nil
}

// gatherCandidates собирает инструменты-кандидаты в детерминированном порядке
func (uc *UseCase) gatherCandidates(ctx context.Context, voucherCode *string) ([]*domain.DiscountInstrument, *domain.DiscountInstrument, error) {
	candidates := make([]*domain.DiscountInstrument, 0, 4)

	var voucher *domain.DiscountInstrument
	if voucherCode != nil {
		found, err := uc.instrumentRepo.GetVoucherByCode(ctx, *voucherCode)
		if err != nil {
			if errors.Is(err, instrumentRepo.ErrInstrumentNotFound) {
				return nil, nil, ErrVoucherNotFound
			}
			return nil, nil, fmt.Errorf("%w: failed to get voucher: %v", ErrInternal, err)
		}
		voucher = found
		candidates = append(candidates, voucher)
	}

	promotions, err := uc.instrumentRepo.ListActivePromotions(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to list promotions: %v", ErrInternal, err)
	}
	candidates = append(candidates, promotions...)

	return candidates, voucher, nil
}

// filterEligible отбирает применимые инструменты
// Неприменимый ваучер — ошибка с кодом причины, неприменимая акция — пропуск
func (uc *UseCase) filterEligible(ctx context.Context, candidates []*domain.DiscountInstrument, voucher *domain.DiscountInstrument, bctx eligibility.BookingContext) ([]*domain.DiscountInstrument, error) {
	eligible := make([]*domain.DiscountInstrument, 0, len(candidates))

	for _, candidate := range candidates {
		result, err := uc.evaluator.Evaluate(ctx, candidate, bctx)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to evaluate instrument id=%d: %v", ErrInternal, candidate.ID, err)
		}

		if result.Eligible {
			eligible = append(eligible, candidate)
			continue
		}

		if voucher != nil && candidate.ID == voucher.ID {
			return nil, NewIneligibleVoucherError(voucher.Code, result.Reason)
		}

		uc.logger.Info("ConfirmAppointment: promotion id=%d skipped: %s", candidate.ID, result.Reason)
	}

	return eligible, nil
}

func instrumentsByID(candidates []*domain.DiscountInstrument) map[int64]*domain.DiscountInstrument {
	byID := make(map[int64]*domain.DiscountInstrument, len(candidates))
	for _, candidate := range candidates {
		byID[candidate.ID] = candidate
	}
	return byID
}

func (uc *UseCase) logUseCaseError(req *Request, err error) {
	switch {
	case errors.Is(err, ErrAppointmentNotFound):
		uc.logger.Warn("ConfirmAppointment: appointment=%d not found", req.AppointmentID)
	case errors.Is(err, ErrVoucherNotFound):
		uc.logger.Warn("ConfirmAppointment: voucher not found for appointment=%d", req.AppointmentID)
	case errors.Is(err, ErrVoucherIneligible):
		uc.logger.Warn("ConfirmAppointment: ineligible voucher for appointment=%d: %v", req.AppointmentID, err)
	case errors.Is(err, ErrQuotaExceeded):
		uc.logger.Warn("ConfirmAppointment: quota exceeded for appointment=%d, transaction rolled back", req.AppointmentID)
	case errors.Is(err, domain.ErrInvalidTransition):
		uc.logger.Warn("ConfirmAppointment: invalid transition for appointment=%d: %v", req.AppointmentID, err)
	default:
		uc.logger.Error("ConfirmAppointment: failed for appointment=%d: %v", req.AppointmentID, err)
	}
}
