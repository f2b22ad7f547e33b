package upsert_slot_config

import (
	"context"

	"github.com/m04kA/SMC-WheelShopService/internal/service/slotconfigs/models"
)

type SlotConfigService interface {
	Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
