package get_quote

import (
	"context"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	"github.com/m04kA/SMC-WheelShopService/internal/service/quotes/models"
)

type QuoteService interface {
	GetByID(ctx context.Context, id int64, userID int64, role domain.UserRole) (*models.QuoteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
