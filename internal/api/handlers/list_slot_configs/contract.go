package list_slot_configs

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WheelShopService/internal/service/slotconfigs/models"
)

type SlotConfigService interface {
	ListRange(ctx context.Context, start, end time.Time) (*models.ConfigListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
