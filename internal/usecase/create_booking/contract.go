package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	"github.com/m04kA/SMC-WheelShopService/internal/integrations/gcalendar"
	"github.com/m04kA/SMC-WheelShopService/internal/queue"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListForSlot(ctx context.Context, key domain.SlotKey) ([]*domain.Booking, error)
}

// PolicyResolver возвращает политику слота по ключу
type PolicyResolver interface {
	ResolvePolicy(ctx context.Context, key domain.SlotKey) (domain.Policy, error)
}

// ServiceCatalog интерфейс каталога услуг
type ServiceCatalog interface {
	GetByID(ctx context.Context, id int64) (*domain.ShopService, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// EventPublisher публикует события уведомлений
type EventPublisher interface {
	Publish(ctx context.Context, event queue.NotificationEvent) error
}

// CalendarSync создает события во внешнем календаре мастерской
type CalendarSync interface {
	CreateEvent(ctx context.Context, event gcalendar.Event) (string, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
