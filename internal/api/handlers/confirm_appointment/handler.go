package confirm_appointment

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PricingService/internal/api/handlers"
	"github.com/m04kA/SMC-PricingService/internal/api/middleware"
	"github.com/m04kA/SMC-PricingService/internal/domain"
	confirmAppointment "github.com/m04kA/SMC-PricingService/internal/usecase/confirm_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "запись не найдена"
	msgVoucherNotFound      = "ваучер не найден"
	msgQuotaExceeded        = "лимит использований скидки исчерпан"
	msgInvalidTransition    = "запись нельзя подтвердить в текущем статусе"
)

type Handler struct {
	useCase ConfirmAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/confirm - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	if _, ok := middleware.GetUserID(r.Context()); !ok {
		h.logger.Warn("POST /appointments/{id}/confirm - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Тело запроса опционально: подтверждение без ваучера
	var req ConfirmAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("POST /appointments/{id}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmAppointment.Request{
		AppointmentID: appointmentID,
		VoucherCode:   req.VoucherCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmAppointment.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/confirm - Not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmAppointment.ErrVoucherNotFound):
			h.logger.Warn("POST /appointments/{id}/confirm - Voucher not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgVoucherNotFound)

		case errors.Is(err, confirmAppointment.ErrVoucherIneligible):
			var ineligible *confirmAppointment.IneligibleVoucherError
			_ = errors.As(err, &ineligible)
			h.logger.Warn("POST /appointments/{id}/confirm - Ineligible voucher: appointment_id=%d, reason=%s",
				appointmentID, ineligible.Reason)
			handlers.RespondError(w, http.StatusUnprocessableEntity,
				fmt.Sprintf("ваучер неприменим: %s", ineligible.Reason))

		case errors.Is(err, confirmAppointment.ErrQuotaExceeded):
			h.logger.Warn("POST /appointments/{id}/confirm - Quota exceeded: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgQuotaExceeded)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("POST /appointments/{id}/confirm - Invalid transition: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, confirmAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{id}/confirm - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /appointments/{id}/confirm - Failed: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/confirm - Confirmed: appointment_id=%d, final_price=%d",
		result.ID, result.FinalPrice)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
