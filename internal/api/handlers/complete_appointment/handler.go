package complete_appointment

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PricingService/internal/api/handlers"
	"github.com/m04kA/SMC-PricingService/internal/api/middleware"
	"github.com/m04kA/SMC-PricingService/internal/domain"
	completeAppointment "github.com/m04kA/SMC-PricingService/internal/usecase/complete_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "запись не найдена"
	msgNoCommissionConfig   = "для услуги не настроена комиссия"
	msgInvalidTransition    = "запись нельзя завершить в текущем статусе"
)

// CompleteAppointmentResponse HTTP модель ответа с завершённой записью
type CompleteAppointmentResponse struct {
	ID          int64     `json:"id"`
	Status      string    `json:"status"`
	FinalPrice  int64     `json:"final_price"`
	CompletedAt time.Time `json:"completed_at"`

	ProfessionalPercentage  float64 `json:"professional_percentage"`
	EstablishmentPercentage float64 `json:"establishment_percentage"`
	ProfessionalAmount      int64   `json:"professional_amount"`
	EstablishmentAmount     int64   `json:"establishment_amount"`
}

type Handler struct {
	useCase CompleteAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CompleteAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/complete - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	if _, ok := middleware.GetUserID(r.Context()); !ok {
		h.logger.Warn("POST /appointments/{id}/complete - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &completeAppointment.Request{AppointmentID: appointmentID})
	if err != nil {
		switch {
		case errors.Is(err, completeAppointment.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/complete - Not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, completeAppointment.ErrCommissionConfigNotFound):
			h.logger.Warn("POST /appointments/{id}/complete - No commission config: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgNoCommissionConfig)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("POST /appointments/{id}/complete - Invalid transition: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("POST /appointments/{id}/complete - Failed: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/complete - Completed: appointment_id=%d, professional_amount=%d",
		result.ID, result.ProfessionalAmount)
	handlers.RespondJSON(w, http.StatusOK, &CompleteAppointmentResponse{
		ID:                      result.ID,
		Status:                  result.Status,
		FinalPrice:              result.FinalPrice,
		CompletedAt:             result.CompletedAt,
		ProfessionalPercentage:  result.ProfessionalPercentage,
		EstablishmentPercentage: result.EstablishmentPercentage,
		ProfessionalAmount:      result.ProfessionalAmount,
		EstablishmentAmount:     result.EstablishmentAmount,
	})
}
