package complete_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PricingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-PricingService/internal/infra/storage/appointment"
	configRepo "github.com/m04kA/SMC-PricingService/internal/infra/storage/commissioncfg"
)

// UseCase use case для завершения записи
// Комиссия рассчитывается по замороженной итоговой цене и сохраняется
// снимком на записи: последующие изменения конфигурации комиссии
// завершённые записи не затрагивают
type UseCase struct {
	appointmentRepo AppointmentRepository
	configRepo      CommissionConfigRepository
	calculator      CommissionCalculator
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	configRepo CommissionConfigRepository,
	calculator CommissionCalculator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		configRepo:      configRepo,
		calculator:      calculator,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case завершения записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CompleteAppointment: appointment=%d", req.AppointmentID)

	// 1. Валидация входных данных
	if req.AppointmentID <= 0 {
		uc.logger.Warn("CompleteAppointment: invalid appointment id=%d", req.AppointmentID)
		return nil, fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var response *Response

	// 2. Сериализуемая транзакция: загрузка, расчёт комиссии, завершение
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Загружаем запись с блокировкой строки
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2.2. Завершать можно подтверждённую или идущую запись
		if !appointment.Status.CanTransitionTo(domain.StatusCompleted) {
			return domain.NewInvalidTransitionError(appointment.Status, domain.StatusCompleted)
		}

		// 2.3. Конфигурация комиссии для услуги
		cfg, err := uc.configRepo.GetByServiceID(txCtx, appointment.ServiceID)
		if err != nil {
			if errors.Is(err, configRepo.ErrConfigNotFound) {
				return ErrCommissionConfigNotFound
			}
			return fmt.Errorf("%w: failed to get commission config: %v", ErrInternal, err)
		}

		// 2.4. Делим замороженную итоговую цену
		split, err := uc.calculator.Split(appointment.FinalPrice, cfg, appointment.ProfessionalID)
		if err != nil {
			return fmt.Errorf("%w: failed to split commission: %v", ErrInternal, err)
		}

		// 2.5. Сохраняем снимок комиссии и переводим запись в completed
		if err := uc.appointmentRepo.CompleteWithCommission(txCtx, appointment.ID, split, now); err != nil {
			return fmt.Errorf("%w: failed to complete appointment: %v", ErrInternal, err)
		}

		response = &Response{
			ID:                      appointment.ID,
			Status:                  string(domain.StatusCompleted),
			FinalPrice:              appointment.FinalPrice,
			CompletedAt:             now,
			ProfessionalPercentage:  split.ProfessionalPercentage,
			EstablishmentPercentage: split.EstablishmentPercentage,
			ProfessionalAmount:      split.ProfessionalAmount,
			EstablishmentAmount:     split.EstablishmentAmount,
		}
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound):
			uc.logger.Warn("CompleteAppointment: appointment=%d not found", req.AppointmentID)
		case errors.Is(err, ErrCommissionConfigNotFound):
			uc.logger.Warn("CompleteAppointment: no commission config for appointment=%d", req.AppointmentID)
		case errors.Is(err, domain.ErrInvalidTransition):
			uc.logger.Warn("CompleteAppointment: invalid transition for appointment=%d: %v", req.AppointmentID, err)
		default:
			uc.logger.Error("CompleteAppointment: failed for appointment=%d: %v", req.AppointmentID, err)
		}
		return nil, err
	}

	uc.logger.Info("CompleteAppointment: completed appointment=%d, professional=%d, establishment=%d",
		response.ID, response.ProfessionalAmount, response.EstablishmentAmount)
	return response, nil
}
