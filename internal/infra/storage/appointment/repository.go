package appointment

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

// appointmentColumns полный список колонок таблицы appointments
// Порядок колонок должен совпадать с порядком сканирования в scanAppointment
var appointmentColumns = []string{
	"id",
	"customer_id",
	"professional_id",
	"service_id",
	"scheduled_date",
	"start_time",
	"duration_minutes",
	"status",
	"service_name",
	"customer_name",
	"customer_phone",
	"original_price",
	"final_price",
	"total_discount_amount",
	"commission_professional_pct",
	"commission_establishment_pct",
	"commission_base_amount",
	"commission_professional_amount",
	"commission_establishment_amount",
	"payment_method",
	"payment_status",
	"payment_paid_amount",
	"payment_remaining_amount",
	"cancellation_reason",
	"cancellation_fee",
	"created_at",
	"updated_at",
	"confirmed_at",
	"completed_at",
	"cancelled_at",
}

// Repository репозиторий для работы с записями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"customer_id",
			"professional_id",
			"service_id",
			"scheduled_date",
			"start_time",
			"duration_minutes",
			"status",
			"service_name",
			"customer_name",
			"customer_phone",
			"original_price",
			"final_price",
			"total_discount_amount",
			"payment_method",
			"payment_status",
			"payment_paid_amount",
			"payment_remaining_amount",
		).
		Values(
			appt.CustomerID,
			appt.ProfessionalID,
			appt.ServiceID,
			appt.ScheduledDate,
			appt.StartTime,
			appt.DurationMinutes,
			appt.Status,
			appt.ServiceName,
			appt.CustomerName,
			appt.CustomerPhone,
			appt.OriginalPrice,
			appt.FinalPrice,
			appt.TotalDiscountAmount,
			appt.Payment.Method,
			appt.Payment.Status,
			appt.Payment.PaidAmount,
			appt.Payment.RemainingAmount,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID
// Внутри транзакции добавляет FOR UPDATE для блокировки строки —
// lifecycle-операции меняют запись только под блокировкой
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	appt, err := scanAppointment(row)
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// GetByCustomerWithFilter получает записи клиента с гибкой фильтрацией
// Поддерживает фильтрацию по мастеру, периоду, статусу и включению
// отменённых/неявок
func (r *Repository) GetByCustomerWithFilter(ctx context.Context, filter domain.CustomerAppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"customer_id": filter.CustomerID})

	if filter.ProfessionalID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"professional_id": *filter.ProfessionalID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"scheduled_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"scheduled_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	selectBuilder = selectBuilder.OrderBy("scheduled_date DESC, start_time DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// CountCompletedByCustomer считает завершённые записи клиента
// Используется для проверки firstTimeCustomersOnly
func (r *Repository) CountCompletedByCustomer(ctx context.Context, customerID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{
			"customer_id": customerID,
			"status":      domain.StatusCompleted,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountCompletedByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountCompletedByCustomer - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// ConfirmPricing подтверждает запись и фиксирует ценовой снимок
// Цена и скидка после подтверждения заморожены
func (r *Repository) ConfirmPricing(ctx context.Context, id int64, finalPrice, totalDiscount int64, confirmedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusConfirmed).
		Set("final_price", finalPrice).
		Set("total_discount_amount", totalDiscount).
		Set("payment_remaining_amount", finalPrice).
		Set("confirmed_at", confirmedAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ConfirmPricing - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "ConfirmPricing")
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// CompleteWithCommission завершает запись и сохраняет снимок комиссии
func (r *Repository) CompleteWithCommission(ctx context.Context, id int64, split *domain.CommissionSplit, completedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCompleted).
		Set("commission_professional_pct", split.ProfessionalPercentage).
		Set("commission_establishment_pct", split.EstablishmentPercentage).
		Set("commission_base_amount", split.BaseAmount).
		Set("commission_professional_amount", split.ProfessionalAmount).
		Set("commission_establishment_amount", split.EstablishmentAmount).
		Set("completed_at", completedAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CompleteWithCommission - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "CompleteWithCommission")
}

// Cancel отменяет запись с указанием причины и (опционально) штрафа
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string, fee *int64, cancelledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCanceled).
		Set("cancellation_reason", reason).
		Set("cancellation_fee", fee).
		Set("cancelled_at", cancelledAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt, confirmedAt, completedAt, cancelledAt sql.NullTime
	var commissionProfPct, commissionEstPct sql.NullFloat64
	var commissionBase, commissionProf, commissionEst sql.NullInt64

	err := row.Scan(
		&appt.ID,
		&appt.CustomerID,
		&appt.ProfessionalID,
		&appt.ServiceID,
		&appt.ScheduledDate,
		&appt.StartTime,
		&appt.DurationMinutes,
		&appt.Status,
		&appt.ServiceName,
		&appt.CustomerName,
		&appt.CustomerPhone,
		&appt.OriginalPrice,
		&appt.FinalPrice,
		&appt.TotalDiscountAmount,
		&commissionProfPct,
		&commissionEstPct,
		&commissionBase,
		&commissionProf,
		&commissionEst,
		&appt.Payment.Method,
		&appt.Payment.Status,
		&appt.Payment.PaidAmount,
		&appt.Payment.RemainingAmount,
		&appt.CancellationReason,
		&appt.CancellationFee,
		&createdAt,
		&updatedAt,
		&confirmedAt,
		&completedAt,
		&cancelledAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time
	if confirmedAt.Valid {
		appt.ConfirmedAt = &confirmedAt.Time
	}
	if completedAt.Valid {
		appt.CompletedAt = &completedAt.Time
	}
	if cancelledAt.Valid {
		appt.CancelledAt = &cancelledAt.Time
	}

	// Снимок комиссии есть только у завершённых записей
	if commissionBase.Valid {
		appt.Commission = &domain.CommissionSplit{
			ProfessionalPercentage:  commissionProfPct.Float64,
			EstablishmentPercentage: commissionEstPct.Float64,
			BaseAmount:              commissionBase.Int64,
			ProfessionalAmount:      commissionProf.Int64,
			EstablishmentAmount:     commissionEst.Int64,
		}
	}

	return &appt, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan appointment row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
