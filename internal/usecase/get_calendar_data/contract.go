package get_calendar_data

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// ConfigRepository интерфейс репозитория конфигураций слотов
type ConfigRepository interface {
	ListRange(ctx context.Context, start, end time.Time) ([]*domain.TimeSlotConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
