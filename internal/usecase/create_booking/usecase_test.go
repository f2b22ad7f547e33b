package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	"github.com/m04kA/SMC-WheelShopService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-WheelShopService/internal/service/slotconfigs"
	slotModels "github.com/m04kA/SMC-WheelShopService/internal/service/slotconfigs/models"
	"github.com/m04kA/SMC-WheelShopService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type fixture struct {
	uc       *UseCase
	store    *memory.Store
	bookings *memory.BookingStore
	configs  *slotconfigs.Service
	service  domain.ShopService
}

func newFixture(t *testing.T, enforce bool) *fixture {
	t.Helper()

	dayStart, err := types.NewTimeStringFromString("09:00")
	require.NoError(t, err)
	dayEnd, err := types.NewTimeStringFromString("18:00")
	require.NoError(t, err)
	labels, err := domain.SlotLabels(dayStart, dayEnd, 60)
	require.NoError(t, err)

	store := memory.NewStore()
	bookings := memory.NewBookingStore(store)
	catalog := memory.NewCatalogStore(store)
	users := memory.NewUserStore(store)
	configs := slotconfigs.NewService(memory.NewSlotConfigStore(store), labels, nopLogger{})

	svc := store.SeedService(domain.ShopService{
		Name:            "Замена колёс",
		Price:           3200,
		DurationMinutes: 60,
		Active:          true,
	})

	uc := NewUseCase(bookings, configs, catalog, users, nil, memory.NewTxManager(), labels, enforce, nopLogger{}).
		WithTimeProvider(&fixedClock{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)})

	return &fixture{
		uc:       uc,
		store:    store,
		bookings: bookings,
		configs:  configs,
		service:  svc,
	}
}

func fixedSlotRequest(t *testing.T, f *fixture, slot string) *Request {
	t.Helper()
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	ts, err := types.NewTimeStringFromString(slot)
	require.NoError(t, err)
	return &Request{
		UserID:       1,
		ServiceID:    f.service.ID,
		Date:         &date,
		TimeSlot:     &ts,
		VehicleBrand: "Lada",
		VehiclePlate: "А123БВ77",
	}
}

func TestExecute_FixedSlot(t *testing.T) {
	f := newFixture(t, true)

	resp, err := f.uc.Execute(context.Background(), fixedSlotRequest(t, f, "10:00"))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, string(domain.TimeKindFixedSlot), resp.TimeKind)
	require.NotNil(t, resp.Date)
	assert.Equal(t, "2026-09-15", *resp.Date)
	require.NotNil(t, resp.TimeSlot)
	assert.Equal(t, "10:00", *resp.TimeSlot)
	assert.Equal(t, "Замена колёс", resp.ServiceName)
	assert.InDelta(t, 3200, resp.ServicePrice, 0.001)
	assert.Nil(t, resp.Warning)
}

func TestExecute_SlotFull(t *testing.T) {
	f := newFixture(t, true)

	// Дефолтная политика: два места в слоте
	_, err := f.uc.Execute(context.Background(), fixedSlotRequest(t, f, "10:00"))
	require.NoError(t, err)
	_, err = f.uc.Execute(context.Background(), fixedSlotRequest(t, f, "10:00"))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), fixedSlotRequest(t, f, "10:00"))
	assert.ErrorIs(t, err, ErrSlotFull)

	// Соседний слот не затронут
	_, err = f.uc.Execute(context.Background(), fixedSlotRequest(t, f, "11:00"))
	assert.NoError(t, err)
}

func TestExecute_SlotClosedByAdmin(t *testing.T) {
	f := newFixture(t, true)

	reason := "санитарный день"
	_, err := f.configs.Upsert(context.Background(), &slotModels.UpsertConfigRequest{
		Date:        "2026-09-15",
		TimeSlot:    "10:00",
		MaxCapacity: 2,
		IsActive:    false,
		Reason:      &reason,
	})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), fixedSlotRequest(t, f, "10:00"))
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_ZeroCapacitySlot(t *testing.T) {
	f := newFixture(t, true)

	// maxCapacity=0 при активном слоте не пропускает никого
	_, err := f.configs.Upsert(context.Background(), &slotModels.UpsertConfigRequest{
		Date:        "2026-09-15",
		TimeSlot:    "10:00",
		MaxCapacity: 0,
		IsActive:    true,
	})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), fixedSlotRequest(t, f, "10:00"))
	assert.ErrorIs(t, err, ErrSlotFull)
}

func TestExecute_CancelledBookingFreesSpot(t *testing.T) {
	f := newFixture(t, true)

	first, err := f.uc.Execute(context.Background(), fixedSlotRequest(t, f, "10:00"))
	require.NoError(t, err)
	_, err = f.uc.Execute(context.Background(), fixedSlotRequest(t, f, "10:00"))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), fixedSlotRequest(t, f, "10:00"))
	require.ErrorIs(t, err, ErrSlotFull)

	require.NoError(t, f.bookings.UpdateStatus(context.Background(), first.ID, domain.StatusCancelled))

	// Отмена освободила место
	_, err = f.uc.Execute(context.Background(), fixedSlotRequest(t, f, "10:00"))
	assert.NoError(t, err)
}

func TestExecute_AdvisoryMode(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.uc.Execute(context.Background(), fixedSlotRequest(t, f, "10:00"))
	require.NoError(t, err)
	_, err = f.uc.Execute(context.Background(), fixedSlotRequest(t, f, "10:00"))
	require.NoError(t, err)

	// Слот переполнен, но в advisory-режиме бронирование создаётся с warning
	resp, err := f.uc.Execute(context.Background(), fixedSlotRequest(t, f, "10:00"))
	require.NoError(t, err)
	require.NotNil(t, resp.Warning)
	assert.Contains(t, *resp.Warning, domain.ReasonSlotFull)
	assert.Greater(t, resp.ID, int64(0))
}

func TestExecute_RangeBookingSkipsAdmission(t *testing.T) {
	f := newFixture(t, true)

	// Интервальные бронирования не занимают места в слотах:
	// заполняем слот 10:00 и создаём интервал поверх него
	_, err := f.uc.Execute(context.Background(), fixedSlotRequest(t, f, "10:00"))
	require.NoError(t, err)
	_, err = f.uc.Execute(context.Background(), fixedSlotRequest(t, f, "10:00"))
	require.NoError(t, err)

	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID:       2,
		ServiceID:    f.service.ID,
		StartAt:      &start,
		EndAt:        &end,
		VehicleBrand: "Kamaz",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.TimeKindRange), resp.TimeKind)
	assert.Nil(t, resp.Date)
	require.NotNil(t, resp.StartAt)
	assert.True(t, resp.StartAt.Equal(start))
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	t.Run("unknown slot label", func(t *testing.T) {
		req := fixedSlotRequest(t, f, "10:30")
		_, err := f.uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrUnknownSlot)
	})

	t.Run("past date", func(t *testing.T) {
		req := fixedSlotRequest(t, f, "10:00")
		past := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		req.Date = &past
		_, err := f.uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("no time specified", func(t *testing.T) {
		req := fixedSlotRequest(t, f, "10:00")
		req.Date = nil
		req.TimeSlot = nil
		_, err := f.uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("end before start", func(t *testing.T) {
		start := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
		end := start.Add(-time.Hour)
		_, err := f.uc.Execute(ctx, &Request{
			UserID:       1,
			ServiceID:    f.service.ID,
			StartAt:      &start,
			EndAt:        &end,
			VehicleBrand: "Lada",
		})
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("missing vehicle brand", func(t *testing.T) {
		req := fixedSlotRequest(t, f, "10:00")
		req.VehicleBrand = "   "
		_, err := f.uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown service", func(t *testing.T) {
		req := fixedSlotRequest(t, f, "10:00")
		req.ServiceID = 9999
		_, err := f.uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}

func TestExecute_ConcurrentAdmission(t *testing.T) {
	f := newFixture(t, true)

	// Одно место в слоте, два конкурентных запроса:
	// допуск и вставка атомарны, проходит ровно один
	_, err := f.configs.Upsert(context.Background(), &slotModels.UpsertConfigRequest{
		Date:        "2026-09-15",
		TimeSlot:    "10:00",
		MaxCapacity: 1,
		IsActive:    true,
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Execute(context.Background(), fixedSlotRequest(t, f, "10:00"))
		}(i)
	}
	wg.Wait()

	succeeded, full := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, ErrSlotFull)
			full++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, full)
}
