package commission

import "errors"

var (
	// ErrInvalidBaseAmount возвращается при отрицательной базовой сумме
	ErrInvalidBaseAmount = errors.New("commission: invalid base amount")
)
