package slotconfigs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	"github.com/m04kA/SMC-WheelShopService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-WheelShopService/internal/service/slotconfigs/models"
	"github.com/m04kA/SMC-WheelShopService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(t *testing.T) *Service {
	t.Helper()

	dayStart, err := types.NewTimeStringFromString("09:00")
	require.NoError(t, err)
	dayEnd, err := types.NewTimeStringFromString("18:00")
	require.NoError(t, err)
	labels, err := domain.SlotLabels(dayStart, dayEnd, 60)
	require.NoError(t, err)

	return NewService(memory.NewSlotConfigStore(memory.NewStore()), labels, nopLogger{})
}

func TestResolvePolicy_Default(t *testing.T) {
	svc := newService(t)

	slot, err := types.NewTimeStringFromString("10:00")
	require.NoError(t, err)
	key := domain.NewSlotKey(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), slot)

	// Без конфигурации действует политика по умолчанию
	policy, err := svc.ResolvePolicy(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPolicy(), policy)
}

func TestUpsert_ThenResolve(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	resp, err := svc.Upsert(ctx, &models.UpsertConfigRequest{
		Date:        "2026-09-15",
		TimeSlot:    "10:00",
		MaxCapacity: 4,
		IsActive:    true,
	})
	require.NoError(t, err)
	assert.Greater(t, resp.ID, int64(0))
	assert.Equal(t, 4, resp.MaxCapacity)

	slot, err := types.NewTimeStringFromString("10:00")
	require.NoError(t, err)
	key := domain.NewSlotKey(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), slot)

	policy, err := svc.ResolvePolicy(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 4, policy.MaxCapacity)
	assert.True(t, policy.IsActive)
}

func TestUpsert_Idempotent(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	first, err := svc.Upsert(ctx, &models.UpsertConfigRequest{
		Date:        "2026-09-15",
		TimeSlot:    "10:00",
		MaxCapacity: 4,
		IsActive:    true,
	})
	require.NoError(t, err)

	// Повторный Upsert по тому же ключу перезаписывает строку, а не создаёт новую
	reason := "закрыто"
	second, err := svc.Upsert(ctx, &models.UpsertConfigRequest{
		Date:        "2026-09-15",
		TimeSlot:    "10:00",
		MaxCapacity: 1,
		IsActive:    false,
		Reason:      &reason,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, second.MaxCapacity)
	assert.False(t, second.IsActive)

	list, err := svc.ListRange(ctx,
		time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, list.Configs, 1)
}

func TestUpsert_Validation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	t.Run("unknown slot", func(t *testing.T) {
		_, err := svc.Upsert(ctx, &models.UpsertConfigRequest{
			Date:        "2026-09-15",
			TimeSlot:    "10:30",
			MaxCapacity: 2,
			IsActive:    true,
		})
		assert.ErrorIs(t, err, ErrUnknownSlot)
	})

	t.Run("capacity out of range", func(t *testing.T) {
		_, err := svc.Upsert(ctx, &models.UpsertConfigRequest{
			Date:        "2026-09-15",
			TimeSlot:    "10:00",
			MaxCapacity: domain.MaxSlotCapacity + 1,
			IsActive:    true,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.Upsert(ctx, &models.UpsertConfigRequest{
			Date:        "2026-09-15",
			TimeSlot:    "10:00",
			MaxCapacity: -1,
			IsActive:    true,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := svc.Upsert(ctx, &models.UpsertConfigRequest{
			Date:        "15.09.2026",
			TimeSlot:    "10:00",
			MaxCapacity: 2,
			IsActive:    true,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestListRange_InvalidPeriod(t *testing.T) {
	svc := newService(t)

	_, err := svc.ListRange(context.Background(),
		time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
