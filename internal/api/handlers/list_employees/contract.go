package list_employees

import (
	"context"

	"github.com/m04kA/SMC-WheelShopService/internal/service/users/models"
)

type UserService interface {
	ListEmployees(ctx context.Context) (*models.UserListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
