package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PricingService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCanceled   AppointmentStatus = "canceled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// ErrInvalidTransition возвращается при недопустимом переходе статуса
// Используется через errors.Is; детали перехода несёт InvalidTransitionError
var ErrInvalidTransition = errors.New("domain: invalid appointment status transition")

// InvalidTransitionError описывает отклонённый переход статуса
type InvalidTransitionError struct {
	Current   AppointmentStatus
	Requested AppointmentStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("domain: invalid transition from %q to %q", e.Current, e.Requested)
}

// Is позволяет проверять ошибку через errors.Is(err, ErrInvalidTransition)
func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// NewInvalidTransitionError создает ошибку недопустимого перехода
func NewInvalidTransitionError(current, requested AppointmentStatus) error {
	return &InvalidTransitionError{Current: current, Requested: requested}
}

// transitionTable закрытая таблица допустимых переходов статусов
// Любой переход, которого нет в таблице, отклоняется
var transitionTable = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled:  {StatusConfirmed, StatusCanceled, StatusNoShow},
	StatusConfirmed:  {StatusInProgress, StatusCompleted, StatusCanceled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCanceled},
	StatusCompleted:  {},
	StatusCanceled:   {},
	StatusNoShow:     {},
}

// IsValid returns true if the status is one of the known values
func (s AppointmentStatus) IsValid() bool {
	_, ok := transitionTable[s]
	return ok
}

// IsTerminal returns true if no further transitions are allowed from the status
func (s AppointmentStatus) IsTerminal() bool {
	next, ok := transitionTable[s]
	return ok && len(next) == 0
}

// CanTransitionTo returns true if the transition is present in the table
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	for _, allowed := range transitionTable[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// PaymentStatus статус оплаты записи
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Payment payment sub-record of an appointment
// Amounts are in cents; gateway integration is outside this service
type Payment struct {
	Method          string
	Status          PaymentStatus
	PaidAmount      int64
	RemainingAmount int64
}

// Appointment represents a salon appointment in the system
// All monetary amounts are stored in cents
type Appointment struct {
	ID             int64
	CustomerID     int64
	ProfessionalID int64
	ServiceID      int64

	ScheduledDate   time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized data for history
	ServiceName   string
	CustomerName  string
	CustomerPhone string

	// Pricing snapshot, frozen at confirmation
	OriginalPrice       int64
	FinalPrice          int64
	TotalDiscountAmount int64

	// Commission snapshot, computed at completion
	Commission *CommissionSplit

	Payment Payment

	CancellationReason *string
	CancellationFee    *int64

	CreatedAt   time.Time
	UpdatedAt   time.Time
	ConfirmedAt *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
}

// IsActive returns true if the appointment is in a non-terminal state
func (a *Appointment) IsActive() bool {
	return !a.Status.IsTerminal()
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status.CanTransitionTo(StatusCanceled)
}

// CanBeMarkedNoShow returns true if the appointment can be marked as no-show
func (a *Appointment) CanBeMarkedNoShow() bool {
	return a.Status.CanTransitionTo(StatusNoShow)
}

// StartsAt combines the scheduled date and start time into a single moment
func (a *Appointment) StartsAt() (time.Time, error) {
	minutes, err := a.StartTime.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	day := time.Date(
		a.ScheduledDate.Year(), a.ScheduledDate.Month(), a.ScheduledDate.Day(),
		0, 0, 0, 0, a.ScheduledDate.Location(),
	)
	return day.Add(time.Duration(minutes) * time.Minute), nil
}

// CustomerAppointmentsFilter фильтр для получения записей клиента
type CustomerAppointmentsFilter struct {
	CustomerID      int64              // Обязательный параметр
	ProfessionalID  *int64             // Фильтр по мастеру (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли завершённые отменой/неявкой записи
}
