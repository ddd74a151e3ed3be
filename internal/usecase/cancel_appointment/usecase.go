package cancel_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PricingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-PricingService/internal/infra/storage/appointment"
)

// UseCase use case для отмены записи
// Зарезервированные использования скидок возвращаются компенсирующей
// операцией в той же транзакции, что и смена статуса
type UseCase struct {
	appointmentRepo AppointmentRepository
	usageLedger     UsageLedger
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	usageLedger UsageLedger,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		usageLedger:     usageLedger,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case отмены записи
// Штраф за отмену не вычисляется сервисом, а передаётся вызывающей стороной
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelAppointment: appointment=%d", req.AppointmentID)

	// 1. Валидация входных данных
	if req.AppointmentID <= 0 {
		uc.logger.Warn("CancelAppointment: invalid appointment id=%d", req.AppointmentID)
		return nil, fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if req.Fee != nil && *req.Fee < 0 {
		return nil, fmt.Errorf("%w: fee must not be negative", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var response *Response

	// 2. Сериализуемая транзакция: смена статуса и возврат использований вместе
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Загружаем запись с блокировкой строки
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2.2. Отменять можно любую нетерминальную запись
		if !appointment.CanBeCancelled() {
			return domain.NewInvalidTransitionError(appointment.Status, domain.StatusCanceled)
		}

		// 2.3. Возвращаем зарезервированные использования скидок
		if err := uc.usageLedger.Release(txCtx, appointment.ID); err != nil {
			return fmt.Errorf("%w: failed to release usages: %v", ErrInternal, err)
		}

		// 2.4. Переводим запись в canceled
		if err := uc.appointmentRepo.Cancel(txCtx, appointment.ID, req.Reason, req.Fee, now); err != nil {
			return fmt.Errorf("%w: failed to cancel appointment: %v", ErrInternal, err)
		}

		response = &Response{
			ID:          appointment.ID,
			Status:      string(domain.StatusCanceled),
			Reason:      req.Reason,
			Fee:         req.Fee,
			CancelledAt: now,
		}
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound):
			uc.logger.Warn("CancelAppointment: appointment=%d not found", req.AppointmentID)
		case errors.Is(err, domain.ErrInvalidTransition):
			uc.logger.Warn("CancelAppointment: invalid transition for appointment=%d: %v", req.AppointmentID, err)
		default:
			uc.logger.Error("CancelAppointment: failed for appointment=%d: %v", req.AppointmentID, err)
		}
		return nil, err
	}

	uc.logger.Info("CancelAppointment: cancelled appointment=%d", response.ID)
	return response, nil
}
