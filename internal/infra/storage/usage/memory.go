package usage

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-PricingService/internal/domain"
)

// MemoryRepository потокобезопасный журнал использований в памяти
// Используется в однонодовом режиме без postgres: атомарность Reserve
// обеспечивает мьютекс вместо сериализуемой транзакции
type MemoryRepository struct {
	mu      sync.Mutex
	nextID  int64
	records []*domain.UsageRecord
}

// NewMemoryRepository создает новый журнал использований в памяти
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

// Reserve атомарно резервирует использование инструмента
// Семантика идентична postgres-репозиторию: проверка лимитов и вставка
// выполняются под одним захватом мьютекса
func (r *MemoryRepository) Reserve(ctx context.Context, record *domain.UsageRecord, totalLimit, perCustomerLimit *int) (*domain.UsageRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if totalLimit != nil && r.countActiveLocked(record.InstrumentID, nil) >= *totalLimit {
		return nil, ErrQuotaExceeded
	}
	if perCustomerLimit != nil && r.countActiveLocked(record.InstrumentID, &record.CustomerID) >= *perCustomerLimit {
		return nil, ErrQuotaExceeded
	}

	stored := *record
	stored.ID = r.nextID
	r.nextID++
	r.records = append(r.records, &stored)

	record.ID = stored.ID
	return record, nil
}

// Release отменяет все активные использования, привязанные к записи
func (r *MemoryRepository) Release(ctx context.Context, appointmentID int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range r.records {
		if record.AppointmentID == appointmentID && record.ReversedAt == nil {
			reversedAt := at
			record.ReversedAt = &reversedAt
		}
	}

	return nil
}

// TotalUsages возвращает число активных использований инструмента
func (r *MemoryRepository) TotalUsages(ctx context.Context, instrumentID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.countActiveLocked(instrumentID, nil), nil
}

// CustomerUsages возвращает число активных использований инструмента клиентом
func (r *MemoryRepository) CustomerUsages(ctx context.Context, instrumentID, customerID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.countActiveLocked(instrumentID, &customerID), nil
}

// ListByInstrument возвращает полную историю использований инструмента
func (r *MemoryRepository) ListByInstrument(ctx context.Context, instrumentID int64) ([]*domain.UsageRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := make([]*domain.UsageRecord, 0)
	for _, record := range r.records {
		if record.InstrumentID == instrumentID {
			recordCopy := *record
			records = append(records, &recordCopy)
		}
	}

	return records, nil
}

func (r *MemoryRepository) countActiveLocked(instrumentID int64, customerID *int64) int {
	count := 0
	for _, record := range r.records {
		if record.InstrumentID != instrumentID || record.ReversedAt != nil {
			continue
		}
		if customerID != nil && record.CustomerID != *customerID {
			continue
		}
		count++
	}
	return count
}
