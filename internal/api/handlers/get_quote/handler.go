package get_quote

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
	msgUnauthorized   = "требуется авторизация"
	msgInvalidQuoteID = "некорректный ID запроса"
	msgNotFound       = "запрос на расчёт не найден"
	msgForbidden      = "доступ запрещен"
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

// Handle GET /api/v1/quotes/{quoteId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	quoteID, err := strconv.ParseInt(vars["quoteId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /quotes/{id} - Invalid quote ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuoteID)
		return
	}

	result, err := h.service.GetByID(r.Context(), quoteID, claims.UserID, claims.Role)
	if err != nil {
		switch {
		case errors.Is(err, quotes.ErrQuoteNotFound):
			h.logger.Warn("GET /quotes/{id} - Quote not found: quote_id=%d", quoteID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, quotes.ErrAccessDenied):
			h.logger.Warn("GET /quotes/{id} - Access denied: quote_id=%d, user_id=%d", quoteID, claims.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /quotes/{id} - Failed to get quote: quote_id=%d, error=%v", quoteID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
