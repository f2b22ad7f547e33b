package decide_quote

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WheelShopService/internal/api/handlers"
	"github.com/m04kA/SMC-WheelShopService/internal/api/middleware"
	"github.com/m04kA/SMC-WheelShopService/internal/service/quotes"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidQuoteID     = "некорректный ID запроса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "запрос на расчёт не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidTransition  = "недопустимый переход статуса"
	msgInvalidInput       = "некорректное решение по запросу"
)

type Handler struct {
	service QuoteService
	logger  Logger
}

func NewHandler(service QuoteService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/quotes/{quoteId}/decision
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.CallerID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	quoteID, err := strconv.ParseInt(vars["quoteId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /quotes/{id}/decision - Invalid quote ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuoteID)
		return
	}

	var req DecideQuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /quotes/{id}/decision - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Decide(r.Context(), quoteID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, quotes.ErrQuoteNotFound):
			h.logger.Warn("PATCH /quotes/{id}/decision - Quote not found: quote_id=%d", quoteID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, quotes.ErrAccessDenied):
			h.logger.Warn("PATCH /quotes/{id}/decision - Access denied: quote_id=%d, user_id=%d", quoteID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, quotes.ErrInvalidTransition):
			h.logger.Warn("PATCH /quotes/{id}/decision - Invalid transition: quote_id=%d, status=%s",
				quoteID, req.Status)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, quotes.ErrInvalidInput):
			h.logger.Warn("PATCH /quotes/{id}/decision - Invalid input: quote_id=%d, error=%v", quoteID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /quotes/{id}/decision - Failed to decide quote: quote_id=%d, error=%v",
				quoteID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /quotes/{id}/decision - Quote decided: quote_id=%d, user_id=%d, status=%s",
		quoteID, userID, req.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
