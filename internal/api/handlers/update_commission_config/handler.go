package update_commission_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PricingService/internal/api/handlers"
	"github.com/m04kA/SMC-PricingService/internal/api/middleware"
	"github.com/m04kA/SMC-PricingService/internal/service/commissioncfg"
)

const (
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidConfig      = "некорректная конфигурация комиссии"
)

type Handler struct {
	service CommissionConfigService
	logger  Logger
}

func NewHandler(service CommissionConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/services/{serviceId}/commission-config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /services/{id}/commission-config - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	if _, ok := middleware.GetUserID(r.Context()); !ok {
		h.logger.Warn("PUT /services/{id}/commission-config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateCommissionConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /services/{id}/commission-config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	saved, err := h.service.Upsert(r.Context(), req.ToDomain(serviceID))
	if err != nil {
		switch {
		case errors.Is(err, commissioncfg.ErrInvalidConfig):
			h.logger.Warn("PUT /services/{id}/commission-config - Invalid config: service_id=%d, error=%v", serviceID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidConfig)

		default:
			h.logger.Error("PUT /services/{id}/commission-config - Failed: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /services/{id}/commission-config - Config saved: service_id=%d, config_id=%d", serviceID, saved.ID)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(saved))
}
