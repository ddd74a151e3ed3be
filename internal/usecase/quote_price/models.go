package quote_price

// Request модель запроса на предварительный расчёт цены
type Request struct {
	AppointmentID int64
	VoucherCode   *string // Код ваучера (опционально)
}

// CandidateDiagnostic результат проверки одного инструмента-кандидата
type CandidateDiagnostic struct {
	InstrumentID int64
	Kind         string
	Name         string
	Eligible     bool
	Reason       string // Код причины отказа, пустой для применимых
	Amount       int64  // Применённая скидка в копейках, 0 если не применена
}

// Response модель ответа с предварительным расчётом
// Расчёт не имеет побочных эффектов: счётчики использований не двигаются,
// цена записи не замораживается
type Response struct {
	AppointmentID       int64
	OriginalPrice       int64
	FinalPrice          int64
	TotalDiscountAmount int64
	Candidates          []CandidateDiagnostic
}
