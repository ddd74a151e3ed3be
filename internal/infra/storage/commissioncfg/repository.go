package commissioncfg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-PricingService/internal/domain"
	"github.com/m04kA/SMC-PricingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PricingService/pkg/psqlbuilder"
)

// Repository репозиторий конфигураций комиссии
// Конфигурация хранится в двух таблицах: commission_configs (базовые проценты
// по услуге) и commission_overrides (персональные проценты мастеров)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигураций комиссии
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByServiceID получает конфигурацию комиссии для услуги вместе с переопределениями
func (r *Repository) GetByServiceID(ctx context.Context, serviceID int64) (*domain.CommissionConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"service_id",
		"professional_percentage",
		"establishment_percentage",
		"created_at",
		"updated_at",
	).
		From("commission_configs").
		Where(squirrel.Eq{"service_id": serviceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByServiceID - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.CommissionConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.ServiceID,
		&cfg.ProfessionalPercentage,
		&cfg.EstablishmentPercentage,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByServiceID - scan config: %v", ErrScanRow, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	overrides, err := r.listOverrides(ctx, executor, cfg.ID)
	if err != nil {
		return nil, err
	}
	cfg.Overrides = overrides

	return &cfg, nil
}

// Upsert создает или обновляет конфигурацию комиссии для услуги
// Переопределения заменяются целиком: старый набор удаляется, новый вставляется
// Вызывать внутри транзакции, иначе промежуточное состояние будет видно читателям
func (r *Repository) Upsert(ctx context.Context, cfg *domain.CommissionConfig) (*domain.CommissionConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("commission_configs").
		Columns("service_id", "professional_percentage", "establishment_percentage").
		Values(cfg.ServiceID, cfg.ProfessionalPercentage, cfg.EstablishmentPercentage).
		Suffix(`ON CONFLICT (service_id) DO UPDATE SET
			professional_percentage = EXCLUDED.professional_percentage,
			establishment_percentage = EXCLUDED.establishment_percentage,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&cfg.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	if err := r.replaceOverrides(ctx, executor, cfg.ID, cfg.Overrides); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (r *Repository) listOverrides(ctx context.Context, executor dbmetrics.DBExecutor, configID int64) ([]domain.CommissionOverride, error) {
	query, args, err := psqlbuilder.Select("professional_id", "percentage").
		From("commission_overrides").
		Where(squirrel.Eq{"config_id": configID}).
		OrderBy("professional_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: listOverrides - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listOverrides - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]domain.CommissionOverride, 0)
	for rows.Next() {
		var override domain.CommissionOverride
		if err := rows.Scan(&override.ProfessionalID, &override.Percentage); err != nil {
			return nil, fmt.Errorf("%w: listOverrides - scan row: %v", ErrScanRow, err)
		}
		overrides = append(overrides, override)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listOverrides - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

func (r *Repository) replaceOverrides(ctx context.Context, executor dbmetrics.DBExecutor, configID int64, overrides []domain.CommissionOverride) error {
	deleteQuery, deleteArgs, err := psqlbuilder.Delete("commission_overrides").
		Where(squirrel.Eq{"config_id": configID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: replaceOverrides - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: replaceOverrides - execute delete: %v", ErrExecQuery, err)
	}

	if len(overrides) == 0 {
		return nil
	}

	builder := psqlbuilder.Insert("commission_overrides").
		Columns("config_id", "professional_id", "percentage")
	for _, override := range overrides {
		builder = builder.Values(configID, override.ProfessionalID, override.Percentage)
	}

	insertQuery, insertArgs, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceOverrides - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: replaceOverrides - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
