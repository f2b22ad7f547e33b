package download_invoice_pdf

import (
	"context"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
)

type InvoiceService interface {
	RenderPDF(ctx context.Context, id int64, userID int64, role domain.UserRole) ([]byte, string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
