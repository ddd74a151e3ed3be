package mark_no_show

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PricingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-PricingService/internal/infra/storage/appointment"
)

// Request модель запроса на отметку неявки
type Request struct {
	AppointmentID int64
}

// Response модель ответа с отмеченной записью
type Response struct {
	ID            int64
	Status        string
	UsageReleased bool // Были ли возвращены использования скидок
	MarkedAt      time.Time
}

// UseCase use case для отметки неявки клиента
// Возврат зарезервированных использований регулируется политикой
// release_usage_on_no_show: заведение само решает, "сгорает" ли ваучер
// при неявке
type UseCase struct {
	appointmentRepo AppointmentRepository
	usageLedger     UsageLedger
	txManager       TransactionManager
	timeProvider    TimeProvider
	releaseUsage    bool
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	usageLedger UsageLedger,
	txManager TransactionManager,
	releaseUsageOnNoShow bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		usageLedger:     usageLedger,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		releaseUsage:    releaseUsageOnNoShow,
		logger:          logger,
	}
}

// Execute выполняет use case отметки неявки
// Никаких финансовых перерасчётов не происходит: цена остаётся замороженной
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MarkNoShow: appointment=%d", req.AppointmentID)

	// 1. Валидация входных данных
	if req.AppointmentID <= 0 {
		uc.logger.Warn("MarkNoShow: invalid appointment id=%d", req.AppointmentID)
		return nil, fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var response *Response

	// 2. Сериализуемая транзакция
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Загружаем запись с блокировкой строки
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2.2. Неявку можно отметить только до начала оказания услуги
		if !appointment.CanBeMarkedNoShow() {
			return domain.NewInvalidTransitionError(appointment.Status, domain.StatusNoShow)
		}

		// 2.3. Возврат использований — решение политики заведения
		if uc.releaseUsage {
			if err := uc.usageLedger.Release(txCtx, appointment.ID); err != nil {
				return fmt.Errorf("%w: failed to release usages: %v", ErrInternal, err)
			}
		}

		// 2.4. Переводим запись в no_show
		if err := uc.appointmentRepo.UpdateStatus(txCtx, appointment.ID, domain.StatusNoShow); err != nil {
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		response = &Response{
			ID:            appointment.ID,
			Status:        string(domain.StatusNoShow),
			UsageReleased: uc.releaseUsage,
			MarkedAt:      now,
		}
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound):
			uc.logger.Warn("MarkNoShow: appointment=%d not found", req.AppointmentID)
		case errors.Is(err, domain.ErrInvalidTransition):
			uc.logger.Warn("MarkNoShow: invalid transition for appointment=%d: %v", req.AppointmentID, err)
		default:
			uc.logger.Error("MarkNoShow: failed for appointment=%d: %v", req.AppointmentID, err)
		}
		return nil, err
	}

	uc.logger.Info("MarkNoShow: marked appointment=%d, usage released=%t", response.ID, response.UsageReleased)
	return response, nil
}
