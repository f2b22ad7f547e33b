package update_invoice_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WheelShopService/internal/api/handlers"
	"github.com/m04kA/SMC-WheelShopService/internal/service/invoices"
	"github.com/m04kA/SMC-WheelShopService/internal/service/invoices/models"
)

const (
	msgInvalidInvoiceID   = "некорректный ID счета"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "счет не найден"
	msgInvalidTransition  = "недопустимый переход статуса"
	msgInvalidInput       = "некорректный статус"
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

// Handle PATCH /api/v1/invoices/{invoiceId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	invoiceID, err := strconv.ParseInt(vars["invoiceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /invoices/{id}/status - Invalid invoice ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInvoiceID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /invoices/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.UpdateStatus(r.Context(), invoiceID, &req)
	if err != nil {
		switch {
		case errors.Is(err, invoices.ErrInvoiceNotFound):
			h.logger.Warn("PATCH /invoices/{id}/status - Invoice not found: invoice_id=%d", invoiceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, invoices.ErrInvalidTransition):
			h.logger.Warn("PATCH /invoices/{id}/status - Invalid transition: invoice_id=%d, status=%s",
				invoiceID, req.Status)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, invoices.ErrInvalidInput):
			h.logger.Warn("PATCH /invoices/{id}/status - Invalid status: invoice_id=%d, status=%s",
				invoiceID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /invoices/{id}/status - Failed to update status: invoice_id=%d, error=%v",
				invoiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /invoices/{id}/status - Status updated: invoice_id=%d, status=%s", invoiceID, req.Status)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
