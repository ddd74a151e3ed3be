package complete_appointment

import "time"

// Request модель запроса на завершение записи
type Request struct {
	AppointmentID int64
}

// Response модель ответа с завершённой записью
// Все суммы в копейках
type Response struct {
	ID          int64
	Status      string
	FinalPrice  int64
	CompletedAt time.Time

	// Снимок комиссии, рассчитанный по замороженной итоговой цене
	ProfessionalPercentage  float64
	EstablishmentPercentage float64
	ProfessionalAmount      int64
	EstablishmentAmount     int64
}
