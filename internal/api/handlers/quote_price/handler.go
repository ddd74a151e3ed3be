package quote_price

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PricingService/internal/api/handlers"
	quotePrice "github.com/m04kA/SMC-PricingService/internal/usecase/quote_price"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgNotFound             = "запись не найдена"
	msgVoucherNotFound      = "ваучер не найден"
)

// CandidateResponse диагностика одного инструмента-кандидата
type CandidateResponse struct {
	InstrumentID int64  `json:"instrument_id"`
	Kind         string `json:"kind"`
	Name         string `json:"name"`
	Eligible     bool   `json:"eligible"`
	Reason       string `json:"reason,omitempty"`
	Amount       int64  `json:"amount"`
}

// QuotePriceResponse HTTP модель ответа с предварительным расчётом
type QuotePriceResponse struct {
	AppointmentID       int64               `json:"appointment_id"`
	OriginalPrice       int64               `json:"original_price"`
	FinalPrice          int64               `json:"final_price"`
	TotalDiscountAmount int64               `json:"total_discount_amount"`
	Candidates          []CandidateResponse `json:"candidates"`
}

type Handler struct {
	useCase QuotePriceUseCase
	logger  Logger
}

func NewHandler(useCase QuotePriceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/{appointmentId}/quote?voucherCode=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /appointments/{id}/quote - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var voucherCode *string
	if code := r.URL.Query().Get("voucherCode"); code != "" {
		voucherCode = &code
	}

	result, err := h.useCase.Execute(r.Context(), &quotePrice.Request{
		AppointmentID: appointmentID,
		VoucherCode:   voucherCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, quotePrice.ErrAppointmentNotFound):
			h.logger.Warn("GET /appointments/{id}/quote - Not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, quotePrice.ErrVoucherNotFound):
			h.logger.Warn("GET /appointments/{id}/quote - Voucher not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgVoucherNotFound)

		default:
			h.logger.Error("GET /appointments/{id}/quote - Failed: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	candidates := make([]CandidateResponse, 0, len(result.Candidates))
	for _, candidate := range result.Candidates {
		candidates = append(candidates, CandidateResponse{
			InstrumentID: candidate.InstrumentID,
			Kind:         candidate.Kind,
			Name:         candidate.Name,
			Eligible:     candidate.Eligible,
			Reason:       candidate.Reason,
			Amount:       candidate.Amount,
		})
	}

	h.logger.Info("GET /appointments/{id}/quote - Quoted: appointment_id=%d, final_price=%d",
		result.AppointmentID, result.FinalPrice)
	handlers.RespondJSON(w, http.StatusOK, &QuotePriceResponse{
		AppointmentID:       result.AppointmentID,
		OriginalPrice:       result.OriginalPrice,
		FinalPrice:          result.FinalPrice,
		TotalDiscountAmount: result.TotalDiscountAmount,
		Candidates:          candidates,
	})
}
