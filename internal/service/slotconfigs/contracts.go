package slotconfigs

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигураций слотов
type ConfigRepository interface {
	GetByKey(ctx context.Context, key domain.SlotKey) (*domain.TimeSlotConfig, error)
	Upsert(ctx context.Context, cfg *domain.TimeSlotConfig) (*domain.TimeSlotConfig, error)
	ListRange(ctx context.Context, start, end time.Time) ([]*domain.TimeSlotConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
