package create_invoice

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WheelShopService/internal/api/handlers"
	"github.com/m04kA/SMC-WheelShopService/internal/service/invoices"
	"github.com/m04kA/SMC-WheelShopService/internal/service/invoices/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUserNotFound       = "пользователь не найден"
	msgBookingNotFound    = "бронирование не найдено"
	msgInvalidInput       = "некорректные данные счета"
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

// Handle POST /api/v1/invoices
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateInvoiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /invoices - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, invoices.ErrBookingNotFound):
			h.logger.Warn("POST /invoices - Booking not found: user_id=%d", req.UserID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, invoices.ErrInvalidInput):
			h.logger.Warn("POST /invoices - Invalid input: user_id=%d, error=%v", req.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /invoices - Failed to create invoice: user_id=%d, error=%v", req.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /invoices - Invoice created: invoice_id=%d, number=%s", result.ID, result.Number)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
