package eligibility

import "context"

// UsageReader read-only доступ к счётчикам журнала использований
// Реализуется сервисом ledger; внутри транзакции подтверждения записи
// чтения видят консистентный снимок счётчиков
type UsageReader interface {
	TotalUsages(ctx context.Context, instrumentID int64) (int, error)
	CustomerUsages(ctx context.Context, instrumentID, customerID int64) (int, error)
}
