package leaves

import (
	"context"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	"github.com/m04kA/SMC-WheelShopService/internal/queue"
)

// LeaveRepository интерфейс репозитория заявок на отпуск
type LeaveRepository interface {
	Create(ctx context.Context, l *domain.LeaveRequest) (*domain.LeaveRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.LeaveRequest, error)
	List(ctx context.Context, employeeID *int64, status *domain.LeaveStatus) ([]*domain.LeaveRequest, error)
	Review(ctx context.Context, id int64, status domain.LeaveStatus, reviewedBy int64) error
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
