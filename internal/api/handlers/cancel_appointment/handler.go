package cancel_appointment

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PricingService/internal/api/handlers"
	"github.com/m04kA/SMC-PricingService/internal/api/middleware"
	"github.com/m04kA/SMC-PricingService/internal/domain"
	cancelAppointment "github.com/m04kA/SMC-PricingService/internal/usecase/cancel_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "запись не найдена"
	msgInvalidTransition    = "запись нельзя отменить в текущем статусе"
)

// CancelAppointmentRequest HTTP модель запроса на отмену
type CancelAppointmentRequest struct {
	Reason *string `json:"reason,omitempty"`
	Fee    *int64  `json:"fee,omitempty"`
}

// CancelAppointmentResponse HTTP модель ответа с отменённой записью
type CancelAppointmentResponse struct {
	ID          int64     `json:"id"`
	Status      string    `json:"status"`
	Reason      *string   `json:"reason,omitempty"`
	Fee         *int64    `json:"fee,omitempty"`
	CancelledAt time.Time `json:"cancelled_at"`
}

type Handler struct {
	useCase CancelAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CancelAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/cancel - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	if _, ok := middleware.GetUserID(r.Context()); !ok {
		h.logger.Warn("POST /appointments/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Тело запроса опционально
	var req CancelAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("POST /appointments/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelAppointment.Request{
		AppointmentID: appointmentID,
		Reason:        req.Reason,
		Fee:           req.Fee,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelAppointment.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/cancel - Not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("POST /appointments/{id}/cancel - Invalid transition: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, cancelAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{id}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /appointments/{id}/cancel - Failed: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/cancel - Cancelled: appointment_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, &CancelAppointmentResponse{
		ID:          result.ID,
		Status:      result.Status,
		Reason:      result.Reason,
		Fee:         result.Fee,
		CancelledAt: result.CancelledAt,
	})
}
