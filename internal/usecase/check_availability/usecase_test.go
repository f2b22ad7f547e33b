package check_availability

import (
	"context"
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

func newFixture(t *testing.T) (*UseCase, *memory.BookingStore, *slotconfigs.Service) {
	t.Helper()

	dayStart, err := types.NewTimeStringFromString("09:00")
	require.NoError(t, err)
	dayEnd, err := types.NewTimeStringFromString("12:00")
	require.NoError(t, err)
	labels, err := domain.SlotLabels(dayStart, dayEnd, 60)
	require.NoError(t, err)

	store := memory.NewStore()
	bookings := memory.NewBookingStore(store)
	configs := slotconfigs.NewService(memory.NewSlotConfigStore(store), labels, nopLogger{})

	uc := NewUseCase(bookings, configs, labels, nopLogger{}).
		WithTimeProvider(&fixedClock{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)})

	return uc, bookings, configs
}

func seedBooking(t *testing.T, bookings *memory.BookingStore, date time.Time, slot string, status domain.BookingStatus) {
	t.Helper()
	ts, err := types.NewTimeStringFromString(slot)
	require.NoError(t, err)
	_, err = bookings.Create(context.Background(), &domain.Booking{
		UserID:       1,
		ServiceID:    1,
		TimeKind:     domain.TimeKindFixedSlot,
		Date:         date,
		TimeSlot:     ts,
		VehicleBrand: "Lada",
		Status:       status,
	})
	require.NoError(t, err)
}

func TestExecute_DefaultPolicy(t *testing.T) {
	uc, _, _ := newFixture(t)

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-09-15", resp.Date)
	require.Len(t, resp.Slots, 3) // 09:00, 10:00, 11:00

	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
		assert.Equal(t, domain.DefaultSlotCapacity, slot.TotalSpots)
		assert.Equal(t, domain.DefaultSlotCapacity, slot.AvailableSpots)
		assert.Empty(t, slot.Reason)
	}
}

func TestExecute_OccupiedAndClosedSlots(t *testing.T) {
	uc, bookings, configs := newFixture(t)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	// 09:00 заполнен, в 10:00 одно место занято и одно освобождено отменой
	seedBooking(t, bookings, date, "09:00", domain.StatusPending)
	seedBooking(t, bookings, date, "09:00", domain.StatusConfirmed)
	seedBooking(t, bookings, date, "10:00", domain.StatusPending)
	seedBooking(t, bookings, date, "10:00", domain.StatusCancelled)

	reason := "нет мастера"
	_, err := configs.Upsert(context.Background(), &slotModels.UpsertConfigRequest{
		Date:        "2026-09-15",
		TimeSlot:    "11:00",
		MaxCapacity: 2,
		IsActive:    false,
		Reason:      &reason,
	})
	require.NoError(t, err)

	resp, err := uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)

	full := resp.Slots[0]
	assert.False(t, full.Available)
	assert.Equal(t, 0, full.AvailableSpots)
	assert.Equal(t, domain.ReasonSlotFull, full.Reason)

	partial := resp.Slots[1]
	assert.True(t, partial.Available)
	assert.Equal(t, 1, partial.AvailableSpots)

	closed := resp.Slots[2]
	assert.False(t, closed.Available)
	assert.Equal(t, reason, closed.Reason)
}

func TestExecute_PastDate(t *testing.T) {
	uc, _, _ := newFixture(t)

	_, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_ZeroDate(t *testing.T) {
	uc, _, _ := newFixture(t)

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
