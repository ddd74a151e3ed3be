package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PricingService/internal/domain"
	usageRepo "github.com/m04kA/SMC-PricingService/internal/infra/storage/usage"
)

// Service сервис журнала использований скидочных инструментов
// Отвечает за резервирование слотов в пределах лимитов и возврат
// использований при отмене записи
type Service struct {
	storage      UsageStorage
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса журнала использований
func NewService(storage UsageStorage, timeProvider TimeProvider, logger Logger) *Service {
	return &Service{
		storage:      storage,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Reserve резервирует использование инструмента для записи
// Лимиты берутся из самого инструмента; nil-лимит означает "без ограничений"
// Вызывать внутри сериализуемой транзакции вместе с остальными шагами подтверждения
func (s *Service) Reserve(ctx context.Context, instrument *domain.DiscountInstrument, customerID, appointmentID, discountApplied int64) (*domain.UsageRecord, error) {
	record := &domain.UsageRecord{
		InstrumentID:    instrument.ID,
		CustomerID:      customerID,
		AppointmentID:   appointmentID,
		DiscountApplied: discountApplied,
		AppliedAt:       s.timeProvider.Now(),
	}

	reserved, err := s.storage.Reserve(ctx, record, instrument.UsageLimit, instrument.UsageLimitPerCustomer)
	if err != nil {
		if errors.Is(err, usageRepo.ErrQuotaExceeded) {
			s.logger.Warn("Reserve: quota exceeded for instrument=%d customer=%d", instrument.ID, customerID)
			return nil, ErrQuotaExceeded
		}
		s.logger.Error("Reserve: storage error for instrument=%d appointment=%d: %v", instrument.ID, appointmentID, err)
		return nil, fmt.Errorf("%w: Reserve - storage error: %v", ErrInternal, err)
	}

	s.logger.Info("Reserve: reserved usage id=%d instrument=%d appointment=%d discount=%d",
		reserved.ID, instrument.ID, appointmentID, discountApplied)
	return reserved, nil
}

// Release возвращает все активные использования, привязанные к записи
// Идемпотентна: повторный вызов для той же записи ничего не меняет
func (s *Service) Release(ctx context.Context, appointmentID int64) error {
	if err := s.storage.Release(ctx, appointmentID, s.timeProvider.Now()); err != nil {
		s.logger.Error("Release: storage error for appointment=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Release - storage error: %v", ErrInternal, err)
	}

	s.logger.Info("Release: released usages for appointment=%d", appointmentID)
	return nil
}

// TotalUsages возвращает число активных использований инструмента
func (s *Service) TotalUsages(ctx context.Context, instrumentID int64) (int, error) {
	count, err := s.storage.TotalUsages(ctx, instrumentID)
	if err != nil {
		s.logger.Error("TotalUsages: storage error for instrument=%d: %v", instrumentID, err)
		return 0, fmt.Errorf("%w: TotalUsages - storage error: %v", ErrInternal, err)
	}
	return count, nil
}

// CustomerUsages возвращает число активных использований инструмента клиентом
func (s *Service) CustomerUsages(ctx context.Context, instrumentID, customerID int64) (int, error) {
	count, err := s.storage.CustomerUsages(ctx, instrumentID, customerID)
	if err != nil {
		s.logger.Error("CustomerUsages: storage error for instrument=%d customer=%d: %v", instrumentID, customerID, err)
		return 0, fmt.Errorf("%w: CustomerUsages - storage error: %v", ErrInternal, err)
	}
	return count, nil
}

// ListUsages возвращает полную историю использований инструмента для аудита
func (s *Service) ListUsages(ctx context.Context, instrumentID int64) ([]*domain.UsageRecord, error) {
	records, err := s.storage.ListByInstrument(ctx, instrumentID)
	if err != nil {
		s.logger.Error("ListUsages: storage error for instrument=%d: %v", instrumentID, err)
		return nil, fmt.Errorf("%w: ListUsages - storage error: %v", ErrInternal, err)
	}
	return records, nil
}
