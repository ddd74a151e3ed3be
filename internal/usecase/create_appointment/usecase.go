package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PricingService/internal/domain"
	catalogClient "github.com/m04kA/SMC-PricingService/internal/integrations/catalogservice"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogClient   CatalogServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogClient:   catalogClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Запись создаётся в статусе scheduled с базовой ценой услуги;
// скидки применяются позже, на этапе подтверждения
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: customer=%d, professional=%d, service=%d, date=%s, time=%s",
		req.CustomerID, req.ProfessionalID, req.ServiceID, req.ScheduledDate.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что дата не в прошлом
	now := uc.timeProvider.Now()
	if err := validateDate(req.ScheduledDate, now); err != nil {
		uc.logger.Warn("CreateAppointment: invalid date for customer=%d: %v", req.CustomerID, err)
		return nil, err
	}

	// 3. Получаем услугу из каталога
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("CreateAppointment: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 4. Получаем мастера из каталога
	professional, err := uc.catalogClient.GetProfessional(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrProfessionalNotFound) {
			uc.logger.Warn("CreateAppointment: professional id=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}

	if !professional.IsActive {
		uc.logger.Warn("CreateAppointment: professional id=%d is inactive", req.ProfessionalID)
		return nil, ErrProfessionalInactive
	}

	// 5. Получаем клиента для денормализации имени и телефона
	customer, err := uc.catalogClient.GetCustomer(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrCustomerNotFound) {
			uc.logger.Warn("CreateAppointment: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = paymentMethodCash
	}

	// 6. Собираем запись: цена замораживается базовой, скидок ещё нет
	appointment := &domain.Appointment{
		CustomerID:      req.CustomerID,
		ProfessionalID:  req.ProfessionalID,
		ServiceID:       req.ServiceID,
		ScheduledDate:   req.ScheduledDate,
		StartTime:       req.StartTime,
		DurationMinutes: service.DurationMinutes,
		Status:          domain.StatusScheduled,
		ServiceName:     service.Name,
		CustomerName:    customer.Name,
		CustomerPhone:   customer.Phone,

		OriginalPrice:       service.BasePrice,
		FinalPrice:          service.BasePrice,
		TotalDiscountAmount: 0,

		Payment: domain.Payment{
			Method:          paymentMethod,
			Status:          domain.PaymentStatusPending,
			PaidAmount:      0,
			RemainingAmount: service.BasePrice,
		},
	}

	// 7. Сохраняем запись
	created, err := uc.appointmentRepo.Create(ctx, appointment)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to create appointment for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateAppointment: created appointment id=%d, customer=%d, price=%d",
		created.ID, created.CustomerID, created.OriginalPrice)
	return FromDomain(created), nil
}
