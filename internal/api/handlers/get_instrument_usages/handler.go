package get_instrument_usages

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PricingService/internal/api/handlers"
	"github.com/m04kA/SMC-PricingService/internal/api/middleware"
	"github.com/m04kA/SMC-PricingService/internal/service/instruments"
)

const (
	msgInvalidInstrumentID = "некорректный ID инструмента"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInstrumentNotFound  = "инструмент не найден"
)

type Handler struct {
	service InstrumentService
	logger  Logger
}

func NewHandler(service InstrumentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/instruments/{instrumentId}/usages
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	instrumentID, err := strconv.ParseInt(vars["instrumentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /instruments/{id}/usages - Invalid instrument ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstrumentID)
		return
	}

	if _, ok := middleware.GetUserID(r.Context()); !ok {
		h.logger.Warn("GET /instruments/{id}/usages - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	records, err := h.service.ListUsages(r.Context(), instrumentID)
	if err != nil {
		switch {
		case errors.Is(err, instruments.ErrInstrumentNotFound):
			h.logger.Warn("GET /instruments/{id}/usages - Instrument not found: instrument_id=%d", instrumentID)
			handlers.RespondNotFound(w, msgInstrumentNotFound)

		default:
			h.logger.Error("GET /instruments/{id}/usages - Failed: instrument_id=%d, error=%v", instrumentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /instruments/{id}/usages - Retrieved %d usages: instrument_id=%d", len(records), instrumentID)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(records))
}
