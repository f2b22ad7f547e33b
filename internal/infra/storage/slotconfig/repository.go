package slotconfig

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	"github.com/m04kA/SMC-WheelShopService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WheelShopService/pkg/psqlbuilder"
)

var configColumns = []string{
	"id",
	"config_date",
	"time_slot",
	"max_capacity",
	"is_active",
	"reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с конфигурацией слотов
// Уникальность (config_date, time_slot) обеспечивается составным
// уникальным индексом, Upsert опирается на него через ON CONFLICT
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByKey получает конфигурацию для ключа (date, timeSlot)
// Возвращает ErrConfigNotFound, если строки нет: вызывающая сторона
// в этом случае применяет дефолтную политику
func (r *Repository) GetByKey(ctx context.Context, key domain.SlotKey) (*domain.TimeSlotConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("time_slot_configs").
		Where(squirrel.Eq{
			"config_date": key.Date,
			"time_slot":   key.TimeSlot,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByKey - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	cfg, err := scanConfig(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByKey - scan config: %v", ErrScanRow, err)
	}

	return cfg, nil
}

// Upsert создает конфигурацию или перезаписывает все поля существующей
// Семантика last-writer-wins: история изменений не ведётся
func (r *Repository) Upsert(ctx context.Context, cfg *domain.TimeSlotConfig) (*domain.TimeSlotConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	key := cfg.Key()

	query, args, err := psqlbuilder.Insert("time_slot_configs").
		Columns(
			"config_date",
			"time_slot",
			"max_capacity",
			"is_active",
			"reason",
		).
		Values(
			key.Date,
			key.TimeSlot,
			cfg.MaxCapacity,
			cfg.IsActive,
			cfg.Reason,
		).
		Suffix(`ON CONFLICT (config_date, time_slot) DO UPDATE SET
			max_capacity = EXCLUDED.max_capacity,
			is_active = EXCLUDED.is_active,
			reason = EXCLUDED.reason,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	cfg.Date = key.Date
	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}

// ListRange получает все конфигурации слотов за период [start, end]
func (r *Repository) ListRange(ctx context.Context, start, end time.Time) ([]*domain.TimeSlotConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("time_slot_configs").
		Where(squirrel.GtOrEq{"config_date": start}).
		Where(squirrel.LtOrEq{"config_date": end}).
		OrderBy("config_date ASC, time_slot ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.TimeSlotConfig, 0)
	for rows.Next() {
		cfg, err := scanConfig(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: ListRange - scan row: %v", ErrScanRow, err)
		}
		configs = append(configs, cfg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRange - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

func scanConfig(scan func(dest ...interface{}) error) (*domain.TimeSlotConfig, error) {
	var cfg domain.TimeSlotConfig
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&cfg.ID,
		&cfg.Date,
		&cfg.TimeSlot,
		&cfg.MaxCapacity,
		&cfg.IsActive,
		&cfg.Reason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}
