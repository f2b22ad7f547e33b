package assign_employee

import (
	"context"

	"github.com/m04kA/SMC-WheelShopService/internal/service/bookings/models"
)

type BookingService interface {
	AssignEmployee(ctx context.Context, bookingID int64, req *models.AssignEmployeeRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
