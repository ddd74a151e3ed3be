package commissioncfg

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PricingService/internal/domain"
	configRepo "github.com/m04kA/SMC-PricingService/internal/infra/storage/commissioncfg"
)

// Service сервис управления конфигурациями комиссии
// Валидация процентов выполняется здесь, на этапе авторинга: калькулятор
// комиссии при завершении записи работает с уже проверенной конфигурацией
type Service struct {
	configRepo ConfigRepository
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигураций комиссии
func NewService(configRepo ConfigRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// GetByService получает конфигурацию комиссии для услуги
func (s *Service) GetByService(ctx context.Context, serviceID int64) (*domain.CommissionConfig, error) {
	cfg, err := s.configRepo.GetByServiceID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("GetByService: config for service=%d not found", serviceID)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("GetByService: repository error for service=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: GetByService - repository error: %v", ErrInternal, err)
	}

	return cfg, nil
}

// Upsert создает или обновляет конфигурацию комиссии для услуги
// Базовые проценты и переопределения сохраняются в одной транзакции
func (s *Service) Upsert(ctx context.Context, cfg *domain.CommissionConfig) (*domain.CommissionConfig, error) {
	if err := cfg.Validate(); err != nil {
		s.logger.Warn("Upsert: invalid config for service=%d: %v", cfg.ServiceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	var saved *domain.CommissionConfig
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		result, err := s.configRepo.Upsert(txCtx, cfg)
		if err != nil {
			return err
		}
		saved = result
		return nil
	})
	if err != nil {
		s.logger.Error("Upsert: transaction error for service=%d: %v", cfg.ServiceID, err)
		return nil, fmt.Errorf("%w: Upsert - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: saved config id=%d service=%d professional=%.2f%% overrides=%d",
		saved.ID, saved.ServiceID, saved.ProfessionalPercentage, len(saved.Overrides))
	return saved, nil
}
