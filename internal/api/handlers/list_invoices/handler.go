package list_invoices

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-WheelShopService/internal/api/handlers"
	"github.com/m04kA/SMC-WheelShopService/internal/api/middleware"
	"github.com/m04kA/SMC-WheelShopService/internal/service/invoices"
	"github.com/m04kA/SMC-WheelShopService/internal/service/invoices/models"
)

const (
	msgUnauthorized  = "требуется авторизация"
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidInput  = "некорректные параметры фильтрации"
)

type Handler struct {
	service InvoiceService
	logger  Logger
}

func NewHandler(service InvoiceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/invoices
// Клиент видит только свои счета, сотрудники могут фильтровать по userId
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	req := &models.ListInvoicesRequest{}

	if claims.Role.IsStaff() {
		if v := r.URL.Query().Get("userId"); v != "" {
			userID, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				h.logger.Warn("GET /invoices - Invalid userId filter: %v", err)
				handlers.RespondBadRequest(w, msgInvalidUserID)
				return
			}
			req.UserID = &userID
		}
	} else {
		req.UserID = &claims.UserID
	}

	if v := r.URL.Query().Get("status"); v != "" {
		req.Status = &v
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, invoices.ErrInvalidInput):
			h.logger.Warn("GET /invoices - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /invoices - Failed to list invoices: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
