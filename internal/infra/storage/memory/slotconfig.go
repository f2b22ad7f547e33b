package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	slotconfigRepo "github.com/m04kA/SMC-WheelShopService/internal/infra/storage/slotconfig"
)

// SlotConfigStore in-memory репозиторий конфигурации слотов
// Уникальность (date, timeSlot) обеспечивается ключом map (SlotKey.String())
type SlotConfigStore struct {
	store *Store
}

// NewSlotConfigStore создает in-memory репозиторий конфигурации слотов
func NewSlotConfigStore(s *Store) *SlotConfigStore {
	return &SlotConfigStore{store: s}
}

// GetByKey получает конфигурацию для ключа (date, timeSlot)
func (r *SlotConfigStore) GetByKey(_ context.Context, key domain.SlotKey) (*domain.TimeSlotConfig, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	cfg, ok := r.store.slotConfigs[key.String()]
	if !ok {
		return nil, slotconfigRepo.ErrConfigNotFound
	}
	return &cfg, nil
}

// Upsert создает конфигурацию или перезаписывает все поля существующей
func (r *SlotConfigStore) Upsert(_ context.Context, cfg *domain.TimeSlotConfig) (*domain.TimeSlotConfig, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := cfg.Key()
	now := time.Now()

	if existing, ok := r.store.slotConfigs[key.String()]; ok {
		existing.MaxCapacity = cfg.MaxCapacity
		existing.IsActive = cfg.IsActive
		existing.Reason = cfg.Reason
		existing.UpdatedAt = now
		r.store.slotConfigs[key.String()] = existing
		*cfg = existing
		return cfg, nil
	}

	cfg.ID = r.store.allocID()
	cfg.Date = key.Date
	cfg.CreatedAt = now
	cfg.UpdatedAt = now
	r.store.slotConfigs[key.String()] = *cfg
	return cfg, nil
}

// ListRange получает конфигурации слотов за период [start, end]
func (r *SlotConfigStore) ListRange(_ context.Context, start, end time.Time) ([]*domain.TimeSlotConfig, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.TimeSlotConfig, 0)
	for _, cfg := range r.store.slotConfigs {
		if cfg.Date.Before(start) || cfg.Date.After(end) {
			continue
		}
		copied := cfg
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.TimeSlot.IsBefore(b.TimeSlot)
	})
	return result, nil
}
