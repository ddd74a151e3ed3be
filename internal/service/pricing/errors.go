package pricing

import "errors"

var (
	// ErrUnknownStrategy возвращается при неизвестной стратегии стекинга скидок
	ErrUnknownStrategy = errors.New("pricing: unknown stacking strategy")

	// ErrNegativePrice возвращается при отрицательной исходной цене
	ErrNegativePrice = errors.New("pricing: original price must not be negative")
)
