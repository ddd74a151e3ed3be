package domain

// Business validation constants
const (
	MinAppointmentDurationMinutes = 5
	MaxAppointmentDurationMinutes = 480 // 8 hours
	MaxCancellationReasonLength   = 500
	MaxInstrumentNameLength       = 200
	MaxVoucherCodeLength          = 64
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses список конечных статусов записи
// Из этих статусов переходы невозможны
var TerminalStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCanceled,
	StatusNoShow,
}

// InactiveStatuses список статусов записей, не занимающих время мастера
// Используется для фильтрации при выборке истории
var InactiveStatuses = []AppointmentStatus{
	StatusCanceled,
	StatusNoShow,
}

// ActiveStatuses список статусов активных записей
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}
