package create_instrument

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PricingService/internal/api/handlers"
	"github.com/m04kA/SMC-PricingService/internal/api/middleware"
	instrumentsService "github.com/m04kA/SMC-PricingService/internal/service/instruments"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateFormat  = "некорректный формат даты (ожидается YYYY-MM-DD)"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInstrument  = "некорректная конфигурация инструмента"
	msgCodeAlreadyExists  = "ваучер с таким кодом уже существует"
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

// Handle POST /api/v1/instruments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		h.logger.Warn("POST /instruments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateInstrumentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /instruments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	instrument, err := req.ToDomain()
	if err != nil {
		h.logger.Warn("POST /instruments - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	created, err := h.service.Create(r.Context(), instrument)
	if err != nil {
		switch {
		case errors.Is(err, instrumentsService.ErrInvalidInput):
			h.logger.Warn("POST /instruments - Invalid instrument: kind=%s, name=%s, error=%v", req.Kind, req.Name, err)
			handlers.RespondBadRequest(w, msgInvalidInstrument)

		case errors.Is(err, instrumentsService.ErrCodeAlreadyExists):
			h.logger.Warn("POST /instruments - Code already exists: code=%s", req.Code)
			handlers.RespondConflict(w, msgCodeAlreadyExists)

		default:
			h.logger.Error("POST /instruments - Failed to create instrument: kind=%s, name=%s, error=%v", req.Kind, req.Name, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /instruments - Instrument created: instrument_id=%d, kind=%s", created.ID, created.Kind)
	handlers.RespondJSON(w, http.StatusCreated, FromDomain(created))
}
