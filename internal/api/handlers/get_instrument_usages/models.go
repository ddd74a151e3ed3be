package get_instrument_usages

import (
	"time"

	"github.com/m04kA/SMC-PricingService/internal/domain"
)

// UsageRecordResponse одна запись журнала использований
// Отменённые использования присутствуют в выдаче с заполненным reversed_at
type UsageRecordResponse struct {
	ID              int64      `json:"id"`
	InstrumentID    int64      `json:"instrument_id"`
	CustomerID      int64      `json:"customer_id"`
	AppointmentID   int64      `json:"appointment_id"`
	DiscountApplied int64      `json:"discount_applied"`
	AppliedAt       time.Time  `json:"applied_at"`
	ReversedAt      *time.Time `json:"reversed_at,omitempty"`
}

// UsageListResponse HTTP модель ответа со списком использований
type UsageListResponse struct {
	Usages []UsageRecordResponse `json:"usages"`
	Total  int                   `json:"total"`
}

// FromDomain конвертирует записи журнала в HTTP ответ
func FromDomain(records []*domain.UsageRecord) *UsageListResponse {
	usages := make([]UsageRecordResponse, 0, len(records))
	for _, record := range records {
		usages = append(usages, UsageRecordResponse{
			ID:              record.ID,
			InstrumentID:    record.InstrumentID,
			CustomerID:      record.CustomerID,
			AppointmentID:   record.AppointmentID,
			DiscountApplied: record.DiscountApplied,
			AppliedAt:       record.AppliedAt,
			ReversedAt:      record.ReversedAt,
		})
	}

	return &UsageListResponse{
		Usages: usages,
		Total:  len(usages),
	}
}
