package instrument

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-PricingService/internal/domain"
	"github.com/m04kA/SMC-PricingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PricingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-PricingService/pkg/types"
)

// pq error code 23505: unique_violation
const pqUniqueViolation = "23505"

// instrumentColumns полный список колонок таблицы discount_instruments
var instrumentColumns = []string{
	"id",
	"kind",
	"name",
	"code",
	"discount_type",
	"value",
	"is_active",
	"start_date",
	"end_date",
	"min_purchase_amount",
	"first_time_customers_only",
	"max_discount_cap",
	"usage_limit",
	"usage_limit_per_customer",
	"day_of_week_restrictions",
	"time_restriction_start",
	"time_restriction_end",
	"created_at",
	"updated_at",
}

// Repository репозиторий скидочных инструментов (ваучеры и акции)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория инструментов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый инструмент
// Валидация конфигурации — ответственность сервисного слоя
func (r *Repository) Create(ctx context.Context, instrument *domain.DiscountInstrument) (*domain.DiscountInstrument, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var code *string
	if instrument.Code != "" {
		code = &instrument.Code
	}

	days := make(pq.Int64Array, len(instrument.DayOfWeekRestrictions))
	for i, day := range instrument.DayOfWeekRestrictions {
		days[i] = int64(day)
	}

	var windowStart, windowEnd *string
	if instrument.TimeRestriction != nil {
		s := instrument.TimeRestriction.Start.String()
		e := instrument.TimeRestriction.End.String()
		windowStart, windowEnd = &s, &e
	}

	query, args, err := psqlbuilder.Insert("discount_instruments").
		Columns(
			"kind",
			"name",
			"code",
			"discount_type",
			"value",
			"is_active",
			"start_date",
			"end_date",
			"min_purchase_amount",
			"first_time_customers_only",
			"max_discount_cap",
			"usage_limit",
			"usage_limit_per_customer",
			"day_of_week_restrictions",
			"time_restriction_start",
			"time_restriction_end",
		).
		Values(
			instrument.Kind,
			instrument.Name,
			code,
			instrument.DiscountType,
			instrument.Value,
			instrument.IsActive,
			instrument.StartDate,
			instrument.EndDate,
			instrument.MinPurchaseAmount,
			instrument.FirstTimeCustomersOnly,
			instrument.MaxDiscountCap,
			instrument.UsageLimit,
			instrument.UsageLimitPerCustomer,
			days,
			windowStart,
			windowEnd,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&instrument.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrCodeAlreadyExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	instrument.CreatedAt = createdAt.Time
	instrument.UpdatedAt = updatedAt.Time

	return instrument, nil
}

// GetByID получает инструмент по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.DiscountInstrument, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetVoucherByCode получает ваучер по коду активации
func (r *Repository) GetVoucherByCode(ctx context.Context, code string) (*domain.DiscountInstrument, error) {
	return r.getOne(ctx, squirrel.Eq{"kind": domain.KindVoucher, "code": code}, "GetVoucherByCode")
}

// ListActivePromotions получает все активные акции
// Применимость к конкретной записи проверяет eligibility-сервис
func (r *Repository) ListActivePromotions(ctx context.Context) ([]*domain.DiscountInstrument, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(instrumentColumns...).
		From("discount_instruments").
		Where(squirrel.Eq{"kind": domain.KindPromotion, "is_active": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActivePromotions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActivePromotions - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	instruments := make([]*domain.DiscountInstrument, 0)
	for rows.Next() {
		instrument, err := scanInstrument(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActivePromotions - scan row: %v", ErrScanRow, err)
		}
		instruments = append(instruments, instrument)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActivePromotions - rows error: %v", ErrScanRow, err)
	}

	return instruments, nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, op string) (*domain.DiscountInstrument, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(instrumentColumns...).
		From("discount_instruments").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	instrument, err := scanInstrument(row)
	if err == sql.ErrNoRows {
		return nil, ErrInstrumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan instrument: %v", ErrScanRow, op, err)
	}

	return instrument, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInstrument(row rowScanner) (*domain.DiscountInstrument, error) {
	var instrument domain.DiscountInstrument
	var code sql.NullString
	var days pq.Int64Array
	var windowStart, windowEnd sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&instrument.ID,
		&instrument.Kind,
		&instrument.Name,
		&code,
		&instrument.DiscountType,
		&instrument.Value,
		&instrument.IsActive,
		&instrument.StartDate,
		&instrument.EndDate,
		&instrument.MinPurchaseAmount,
		&instrument.FirstTimeCustomersOnly,
		&instrument.MaxDiscountCap,
		&instrument.UsageLimit,
		&instrument.UsageLimitPerCustomer,
		&days,
		&windowStart,
		&windowEnd,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	instrument.Code = code.String

	if len(days) > 0 {
		instrument.DayOfWeekRestrictions = make([]time.Weekday, len(days))
		for i, day := range days {
			instrument.DayOfWeekRestrictions[i] = time.Weekday(day)
		}
	}

	if windowStart.Valid && windowEnd.Valid {
		instrument.TimeRestriction = &domain.TimeWindow{
			Start: types.TimeString(windowStart.String),
			End:   types.TimeString(windowEnd.String),
		}
	}

	instrument.CreatedAt = createdAt.Time
	instrument.UpdatedAt = updatedAt.Time

	return &instrument, nil
}
