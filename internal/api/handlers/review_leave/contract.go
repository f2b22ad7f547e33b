package review_leave

import (
	"context"

	"github.com/m04kA/SMC-WheelShopService/internal/service/leaves/models"
)

type LeaveService interface {
	Review(ctx context.Context, id int64, req *models.ReviewLeaveRequest) (*models.LeaveResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
