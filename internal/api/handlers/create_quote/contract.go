package create_quote

import (
	"context"

	"github.com/m04kA/SMC-WheelShopService/internal/service/quotes/models"
)

type QuoteService interface {
	Create(ctx context.Context, req *models.CreateQuoteRequest) (*models.QuoteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
