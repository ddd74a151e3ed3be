package usage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-PricingService/internal/domain"
	"github.com/m04kA/SMC-PricingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PricingService/pkg/psqlbuilder"
)

// Repository репозиторий журнала использований скидочных инструментов
//
// Reserve рассчитан на вызов внутри сериализуемой транзакции: проверка
// лимита и вставка записи выполняются двумя запросами, и только уровень
// изоляции SERIALIZABLE гарантирует отсутствие гонки двух параллельных
// резервирований последнего слота
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория использований
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Reserve атомарно резервирует использование инструмента
// Возвращает ErrQuotaExceeded, если общий или персональный лимит исчерпан
// Отменённые использования (reversed_at IS NOT NULL) в лимитах не учитываются
func (r *Repository) Reserve(ctx context.Context, record *domain.UsageRecord, totalLimit, perCustomerLimit *int) (*domain.UsageRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if totalLimit != nil {
		total, err := r.countActive(ctx, executor, squirrel.Eq{"instrument_id": record.InstrumentID}, "Reserve")
		if err != nil {
			return nil, err
		}
		if total >= *totalLimit {
			return nil, ErrQuotaExceeded
		}
	}

	if perCustomerLimit != nil {
		customerTotal, err := r.countActive(ctx, executor, squirrel.Eq{
			"instrument_id": record.InstrumentID,
			"customer_id":   record.CustomerID,
		}, "Reserve")
		if err != nil {
			return nil, err
		}
		if customerTotal >= *perCustomerLimit {
			return nil, ErrQuotaExceeded
		}
	}

	query, args, err := psqlbuilder.Insert("usage_records").
		Columns("instrument_id", "customer_id", "appointment_id", "discount_applied", "applied_at").
		Values(record.InstrumentID, record.CustomerID, record.AppointmentID, record.DiscountApplied, record.AppliedAt).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Reserve - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&record.ID); err != nil {
		return nil, fmt.Errorf("%w: Reserve - execute insert: %v", ErrExecQuery, err)
	}

	return record, nil
}

// Release отменяет все активные использования, привязанные к записи
// Идемпотентна: повторный вызов не находит активных записей и не делает ничего
// Записи не удаляются, а помечаются reversed_at для аудита
func (r *Repository) Release(ctx context.Context, appointmentID int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("usage_records").
		Set("reversed_at", at).
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		Where("reversed_at IS NULL").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// TotalUsages возвращает число активных использований инструмента
func (r *Repository) TotalUsages(ctx context.Context, instrumentID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	return r.countActive(ctx, executor, squirrel.Eq{"instrument_id": instrumentID}, "TotalUsages")
}

// CustomerUsages возвращает число активных использований инструмента клиентом
func (r *Repository) CustomerUsages(ctx context.Context, instrumentID, customerID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	return r.countActive(ctx, executor, squirrel.Eq{
		"instrument_id": instrumentID,
		"customer_id":   customerID,
	}, "CustomerUsages")
}

// ListByInstrument возвращает полную историю использований инструмента,
// включая отменённые записи
func (r *Repository) ListByInstrument(ctx context.Context, instrumentID int64) ([]*domain.UsageRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"instrument_id",
		"customer_id",
		"appointment_id",
		"discount_applied",
		"applied_at",
		"reversed_at",
	).
		From("usage_records").
		Where(squirrel.Eq{"instrument_id": instrumentID}).
		OrderBy("applied_at ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByInstrument - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByInstrument - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.UsageRecord, 0)
	for rows.Next() {
		var record domain.UsageRecord
		var reversedAt sql.NullTime

		err := rows.Scan(
			&record.ID,
			&record.InstrumentID,
			&record.CustomerID,
			&record.AppointmentID,
			&record.DiscountApplied,
			&record.AppliedAt,
			&reversedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByInstrument - scan row: %v", ErrScanRow, err)
		}

		if reversedAt.Valid {
			record.ReversedAt = &reversedAt.Time
		}

		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByInstrument - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}

func (r *Repository) countActive(ctx context.Context, executor dbmetrics.DBExecutor, where squirrel.Eq, op string) (int, error) {
	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("usage_records").
		Where(where).
		Where("reversed_at IS NULL").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: %s - build count query: %v", ErrBuildQuery, op, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %s - execute count: %v", ErrExecQuery, op, err)
	}

	return count, nil
}
