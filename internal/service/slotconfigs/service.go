package slotconfigs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	configRepo "github.com/m04kA/SMC-WheelShopService/internal/infra/storage/slotconfig"
	"github.com/m04kA/SMC-WheelShopService/internal/service/slotconfigs/models"
	"github.com/m04kA/SMC-WheelShopService/pkg/types"
)

// Service сервис для работы с конфигурацией слотов
type Service struct {
	configRepo ConfigRepository
	dayLabels  []types.TimeString
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации слотов
// dayLabels задает множество допустимых меток слотов рабочего дня
func NewService(configRepo ConfigRepository, dayLabels []types.TimeString, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		dayLabels:  dayLabels,
		logger:     logger,
	}
}

// ResolvePolicy возвращает политику слота по ключу
// Если админ не задал конфигурацию для ключа, возвращается политика по умолчанию
func (s *Service) ResolvePolicy(ctx context.Context, key domain.SlotKey) (domain.Policy, error) {
	cfg, err := s.configRepo.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			return domain.DefaultPolicy(), nil
		}
		s.logger.Error("ResolvePolicy: repository error for key=%s: %v", key, err)
		return domain.Policy{}, fmt.Errorf("%w: ResolvePolicy - repository error: %v", ErrInternal, err)
	}
	return domain.PolicyFromConfig(cfg), nil
}

// Upsert создает или обновляет конфигурацию слота
// Повторный Upsert по тому же ключу обновляет существующую строку
func (s *Service) Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Upsert: upserting config for date=%s slot=%s", req.Date, req.TimeSlot)

	cfg, err := req.ToDomainConfig()
	if err != nil {
		s.logger.Warn("Upsert: invalid input date=%s slot=%s: %v", req.Date, req.TimeSlot, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.validate(cfg); err != nil {
		s.logger.Warn("Upsert: validation failed for key=%s: %v", cfg.Key(), err)
		return nil, err
	}

	saved, err := s.configRepo.Upsert(ctx, cfg)
	if err != nil {
		s.logger.Error("Upsert: repository error for key=%s: %v", cfg.Key(), err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: saved config id=%d key=%s capacity=%d active=%v",
		saved.ID, saved.Key(), saved.MaxCapacity, saved.IsActive)
	return models.FromDomainConfig(saved), nil
}

// ListRange возвращает конфигурации слотов за период [start, end]
func (s *Service) ListRange(ctx context.Context, start, end time.Time) (*models.ConfigListResponse, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}

	configs, err := s.configRepo.ListRange(ctx, start, end)
	if err != nil {
		s.logger.Error("ListRange: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRange - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfigList(configs), nil
}

func (s *Service) validate(cfg *domain.TimeSlotConfig) error {
	if cfg.MaxCapacity < domain.MinSlotCapacity || cfg.MaxCapacity > domain.MaxSlotCapacity {
		return fmt.Errorf("%w: maxCapacity must be between %d and %d",
			ErrInvalidInput, domain.MinSlotCapacity, domain.MaxSlotCapacity)
	}
	if !domain.IsKnownSlotLabel(cfg.TimeSlot, s.dayLabels) {
		return fmt.Errorf("%w: %s", ErrUnknownSlot, cfg.TimeSlot)
	}
	if cfg.Reason != nil && len(*cfg.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason too long", ErrInvalidInput)
	}
	return nil
}
