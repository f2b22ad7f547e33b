package update_invoice_status

import (
	"context"

	"github.com/m04kA/SMC-WheelShopService/internal/service/invoices/models"
)

type InvoiceService interface {
	UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
