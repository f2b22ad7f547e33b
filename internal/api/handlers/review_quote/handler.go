package review_quote

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WheelShopService/internal/api/handlers"
	"github.com/m04kA/SMC-WheelShopService/internal/service/quotes"
	"github.com/m04kA/SMC-WheelShopService/internal/service/quotes/models"
)

const (
	msgInvalidQuoteID     = "некорректный ID запроса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "запрос на расчёт не найден"
	msgInvalidTransition  = "недопустимый переход статуса"
	msgInvalidInput       = "некорректные данные ответа на запрос"
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

// Handle PATCH /api/v1/quotes/{quoteId}/review
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	quoteID, err := strconv.ParseInt(vars["quoteId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /quotes/{id}/review - Invalid quote ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuoteID)
		return
	}

	var req models.ReviewQuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /quotes/{id}/review - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Review(r.Context(), quoteID, &req)
	if err != nil {
		switch {
		case errors.Is(err, quotes.ErrQuoteNotFound):
			h.logger.Warn("PATCH /quotes/{id}/review - Quote not found: quote_id=%d", quoteID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, quotes.ErrInvalidTransition):
			h.logger.Warn("PATCH /quotes/{id}/review - Invalid transition: quote_id=%d, status=%s",
				quoteID, req.Status)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, quotes.ErrInvalidInput):
			h.logger.Warn("PATCH /quotes/{id}/review - Invalid input: quote_id=%d, error=%v", quoteID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /quotes/{id}/review - Failed to review quote: quote_id=%d, error=%v",
				quoteID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /quotes/{id}/review - Quote reviewed: quote_id=%d, status=%s", quoteID, req.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
