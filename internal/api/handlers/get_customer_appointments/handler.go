package get_customer_appointments

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PricingService/internal/api/handlers"
	"github.com/m04kA/SMC-PricingService/internal/api/middleware"
	"github.com/m04kA/SMC-PricingService/internal/domain"
)

const (
	msgInvalidCustomerID = "некорректный ID клиента"
	msgInvalidStatus     = "некорректный статус записи"
	msgInvalidDateRange  = "некорректный формат даты периода, ожидается YYYY-MM-DD"
	msgMissingUserID     = "отсутствует ID пользователя"
)

// AppointmentListItem элемент списка записей клиента
type AppointmentListItem struct {
	ID                  int64  `json:"id"`
	ProfessionalID      int64  `json:"professional_id"`
	ServiceID           int64  `json:"service_id"`
	ServiceName         string `json:"service_name"`
	ScheduledDate       string `json:"scheduled_date"`
	StartTime           string `json:"start_time"`
	Status              string `json:"status"`
	OriginalPrice       int64  `json:"original_price"`
	FinalPrice          int64  `json:"final_price"`
	TotalDiscountAmount int64  `json:"total_discount_amount"`
}

// AppointmentListResponse HTTP модель списка записей
type AppointmentListResponse struct {
	Appointments []AppointmentListItem `json:"appointments"`
	Total        int                   `json:"total"`
}

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/customers/{customerId}/appointments
// Параметры: status, professional_id, from, to, include_inactive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerID, err := strconv.ParseInt(vars["customerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /customers/{id}/appointments - Invalid customer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	if _, ok := middleware.GetUserID(r.Context()); !ok {
		h.logger.Warn("GET /customers/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	filter := domain.CustomerAppointmentsFilter{CustomerID: customerID}

	query := r.URL.Query()
	if statusStr := query.Get("status"); statusStr != "" {
		status := domain.AppointmentStatus(statusStr)
		if !status.IsValid() {
			h.logger.Warn("GET /customers/{id}/appointments - Invalid status: %s", statusStr)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		filter.Status = &status
	}

	if professionalStr := query.Get("professional_id"); professionalStr != "" {
		professionalID, err := strconv.ParseInt(professionalStr, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidCustomerID)
			return
		}
		filter.ProfessionalID = &professionalID
	}

	if fromStr := query.Get("from"); fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDateRange)
			return
		}
		filter.StartDate = &from
	}

	if toStr := query.Get("to"); toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDateRange)
			return
		}
		filter.EndDate = &to
	}

	filter.IncludeInactive = query.Get("include_inactive") == "true"

	appointments, err := h.service.GetCustomerAppointments(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /customers/{id}/appointments - Failed: customer_id=%d, error=%v", customerID, err)
		handlers.RespondInternalError(w)
		return
	}

	items := make([]AppointmentListItem, 0, len(appointments))
	for _, appointment := range appointments {
		items = append(items, AppointmentListItem{
			ID:                  appointment.ID,
			ProfessionalID:      appointment.ProfessionalID,
			ServiceID:           appointment.ServiceID,
			ServiceName:         appointment.ServiceName,
			ScheduledDate:       appointment.ScheduledDate.Format(domain.DateFormat),
			StartTime:           appointment.StartTime.String(),
			Status:              string(appointment.Status),
			OriginalPrice:       appointment.OriginalPrice,
			FinalPrice:          appointment.FinalPrice,
			TotalDiscountAmount: appointment.TotalDiscountAmount,
		})
	}

	h.logger.Info("GET /customers/{id}/appointments - Retrieved %d appointments: customer_id=%d", len(items), customerID)
	handlers.RespondJSON(w, http.StatusOK, &AppointmentListResponse{
		Appointments: items,
		Total:        len(items),
	})
}
