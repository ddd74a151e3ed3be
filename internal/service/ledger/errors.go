package ledger

import "errors"

var (
	// ErrQuotaExceeded лимит использований инструмента исчерпан
	ErrQuotaExceeded = errors.New("ledger: usage quota exceeded")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("ledger: internal error")
)
