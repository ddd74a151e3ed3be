package instruments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PricingService/internal/domain"
	instrumentRepo "github.com/m04kA/SMC-PricingService/internal/infra/storage/instrument"
)

// Service сервис управления скидочными инструментами
// Отвечает за авторинг ваучеров и акций и чтение истории их использований
type Service struct {
	instrumentRepo InstrumentRepository
	usageReader    UsageReader
	logger         Logger
}

// NewService создает новый экземпляр сервиса инструментов
func NewService(instrumentRepo InstrumentRepository, usageReader UsageReader, logger Logger) *Service {
	return &Service{
		instrumentRepo: instrumentRepo,
		usageReader:    usageReader,
		logger:         logger,
	}
}

// Create создает новый скидочный инструмент
// Вся валидация конфигурации выполняется здесь, на этапе авторинга:
// движок расчёта цены считает уже сохранённые инструменты корректными
func (s *Service) Create(ctx context.Context, instrument *domain.DiscountInstrument) (*domain.DiscountInstrument, error) {
	if err := instrument.Validate(); err != nil {
		s.logger.Warn("Create: invalid instrument configuration name=%q: %v", instrument.Name, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.instrumentRepo.Create(ctx, instrument)
	if err != nil {
		if errors.Is(err, instrumentRepo.ErrCodeAlreadyExists) {
			s.logger.Warn("Create: voucher code=%q already exists", instrument.Code)
			return nil, ErrCodeAlreadyExists
		}
		s.logger.Error("Create: repository error for instrument name=%q: %v", instrument.Name, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created %s id=%d name=%q", created.Kind, created.ID, created.Name)
	return created, nil
}

// GetByID получает инструмент по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.DiscountInstrument, error) {
	instrument, err := s.instrumentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, instrumentRepo.ErrInstrumentNotFound) {
			s.logger.Warn("GetByID: instrument id=%d not found", id)
			return nil, ErrInstrumentNotFound
		}
		s.logger.Error("GetByID: repository error for instrument id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return instrument, nil
}

// ListUsages возвращает историю использований инструмента для аудита
// Включает отменённые использования
func (s *Service) ListUsages(ctx context.Context, instrumentID int64) ([]*domain.UsageRecord, error) {
	if _, err := s.GetByID(ctx, instrumentID); err != nil {
		return nil, err
	}

	records, err := s.usageReader.ListUsages(ctx, instrumentID)
	if err != nil {
		s.logger.Error("ListUsages: usage reader error for instrument id=%d: %v", instrumentID, err)
		return nil, fmt.Errorf("%w: ListUsages - usage reader error: %v", ErrInternal, err)
	}

	return records, nil
}
