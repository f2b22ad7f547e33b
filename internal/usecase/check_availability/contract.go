package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListForSlot(ctx context.Context, key domain.SlotKey) ([]*domain.Booking, error)
}

// PolicyResolver возвращает политику слота по ключу
type PolicyResolver interface {
	ResolvePolicy(ctx context.Context, key domain.SlotKey) (domain.Policy, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
