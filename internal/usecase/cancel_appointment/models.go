package cancel_appointment

import "time"

// Request модель запроса на отмену записи
type Request struct {
	AppointmentID int64
	Reason        *string // Причина отмены (опционально)
	Fee           *int64  // Штраф за отмену в копейках (решение политики вызывающей стороны)
}

// Response модель ответа с отменённой записью
type Response struct {
	ID          int64
	Status      string
	Reason      *string
	Fee         *int64
	CancelledAt time.Time
}
