package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PricingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-PricingService/internal/infra/storage/appointment"
)

// Service сервис чтения записей и простых смен статуса
// Переходы с финансовыми эффектами (подтверждение, завершение, отмена)
// живут в соответствующих юзкейсах
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return appointment, nil
}

// GetCustomerAppointments получает записи клиента с фильтрацией по статусу и датам
func (s *Service) GetCustomerAppointments(ctx context.Context, filter domain.CustomerAppointmentsFilter) ([]*domain.Appointment, error) {
	appointments, err := s.appointmentRepo.GetByCustomerWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCustomerAppointments: repository error for customer=%d: %v", filter.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerAppointments - repository error: %v", ErrInternal, err)
	}

	return appointments, nil
}

// Start переводит подтверждённую запись в статус "клиент пришёл, услуга оказывается"
func (s *Service) Start(ctx context.Context, id int64) (*domain.Appointment, error) {
	appointment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !appointment.Status.CanTransitionTo(domain.StatusInProgress) {
		s.logger.Warn("Start: invalid transition %s -> %s for appointment id=%d",
			appointment.Status, domain.StatusInProgress, id)
		return nil, domain.NewInvalidTransitionError(appointment.Status, domain.StatusInProgress)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, domain.StatusInProgress); err != nil {
		s.logger.Error("Start: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Start - repository error: %v", ErrInternal, err)
	}

	appointment.Status = domain.StatusInProgress
	s.logger.Info("Start: appointment id=%d is now in progress", id)
	return appointment, nil
}
