package quotes

import (
	"context"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	"github.com/m04kA/SMC-WheelShopService/internal/queue"
)

// QuoteRepository интерфейс репозитория запросов на расчёт
type QuoteRepository interface {
	Create(ctx context.Context, q *domain.Quote) (*domain.Quote, error)
	GetByID(ctx context.Context, id int64) (*domain.Quote, error)
	List(ctx context.Context, userID *int64, status *domain.QuoteStatus) ([]*domain.Quote, error)
	Review(ctx context.Context, id int64, status domain.QuoteStatus, price *float64, adminNotes *string) error
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
