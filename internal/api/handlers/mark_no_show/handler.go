package mark_no_show

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PricingService/internal/api/handlers"
	"github.com/m04kA/SMC-PricingService/internal/api/middleware"
	"github.com/m04kA/SMC-PricingService/internal/domain"
	markNoShow "github.com/m04kA/SMC-PricingService/internal/usecase/mark_no_show"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "запись не найдена"
	msgInvalidTransition    = "неявку нельзя отметить в текущем статусе записи"
)

// MarkNoShowResponse HTTP модель ответа
type MarkNoShowResponse struct {
	ID            int64     `json:"id"`
	Status        string    `json:"status"`
	UsageReleased bool      `json:"usage_released"`
	MarkedAt      time.Time `json:"marked_at"`
}

type Handler struct {
	useCase MarkNoShowUseCase
	logger  Logger
}

func NewHandler(useCase MarkNoShowUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/no-show
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/no-show - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	if _, ok := middleware.GetUserID(r.Context()); !ok {
		h.logger.Warn("POST /appointments/{id}/no-show - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &markNoShow.Request{AppointmentID: appointmentID})
	if err != nil {
		switch {
		case errors.Is(err, markNoShow.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/no-show - Not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("POST /appointments/{id}/no-show - Invalid transition: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("POST /appointments/{id}/no-show - Failed: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/no-show - Marked: appointment_id=%d, usage_released=%t",
		result.ID, result.UsageReleased)
	handlers.RespondJSON(w, http.StatusOK, &MarkNoShowResponse{
		ID:            result.ID,
		Status:        result.Status,
		UsageReleased: result.UsageReleased,
		MarkedAt:      result.MarkedAt,
	})
}
