package review_quote

import (
	"context"

	"github.com/m04kA/SMC-WheelShopService/internal/service/quotes/models"
)

type QuoteService interface {
	Review(ctx context.Context, id int64, req *models.ReviewQuoteRequest) (*models.QuoteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
