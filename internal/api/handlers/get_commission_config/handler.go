package get_commission_config

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
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgConfigNotFound   = "конфигурация комиссии не найдена"
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

// Handle GET /api/v1/services/{serviceId}/commission-config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /services/{id}/commission-config - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	if _, ok := middleware.GetUserID(r.Context()); !ok {
		h.logger.Warn("GET /services/{id}/commission-config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	cfg, err := h.service.GetByService(r.Context(), serviceID)
	if err != nil {
		switch {
		case errors.Is(err, commissioncfg.ErrConfigNotFound):
			h.logger.Warn("GET /services/{id}/commission-config - Not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgConfigNotFound)

		default:
			h.logger.Error("GET /services/{id}/commission-config - Failed: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(cfg))
}
