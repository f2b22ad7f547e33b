package list_leaves

import (
	"context"

	"github.com/m04kA/SMC-WheelShopService/internal/service/leaves/models"
)

type LeaveService interface {
	List(ctx context.Context, req *models.ListLeavesRequest) (*models.LeaveListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
