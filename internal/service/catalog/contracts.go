package catalog

import (
	"context"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
)

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ShopService, error)
	ListActive(ctx context.Context) ([]*domain.ShopService, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
