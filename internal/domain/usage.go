package domain

import "time"

// UsageRecord одна запись журнала использования скидочного инструмента
// Создаётся при успешном применении инструмента; при отмене записи
// логически сторнируется (ReversedAt), но не удаляется — журнал аудируемый
type UsageRecord struct {
	ID            int64
	InstrumentID  int64
	CustomerID    int64
	AppointmentID int64

	// DiscountApplied фактически применённая скидка в копейках
	DiscountApplied int64

	AppliedAt  time.Time
	ReversedAt *time.Time
}

// IsReversed returns true if the usage has been compensated
func (u *UsageRecord) IsReversed() bool {
	return u.ReversedAt != nil
}
