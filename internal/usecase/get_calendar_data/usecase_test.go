package get_calendar_data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	"github.com/m04kA/SMC-WheelShopService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-WheelShopService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newFixture(t *testing.T) (*UseCase, *memory.BookingStore, *memory.SlotConfigStore) {
	t.Helper()

	dayStart, err := types.NewTimeStringFromString("09:00")
	require.NoError(t, err)
	dayEnd, err := types.NewTimeStringFromString("11:00")
	require.NoError(t, err)
	labels, err := domain.SlotLabels(dayStart, dayEnd, 60)
	require.NoError(t, err)

	store := memory.NewStore()
	bookings := memory.NewBookingStore(store)
	configs := memory.NewSlotConfigStore(store)

	return NewUseCase(bookings, configs, labels, nopLogger{}), bookings, configs
}

func mustSlot(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func TestExecute_Grid(t *testing.T) {
	uc, bookings, configs := newFixture(t)
	ctx := context.Background()
	day1 := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	// Два бронирования в 09:00 первого дня, одно из них отменено
	_, err := bookings.Create(ctx, &domain.Booking{
		UserID:      1,
		TimeKind:    domain.TimeKindFixedSlot,
		Date:        day1,
		TimeSlot:    mustSlot(t, "09:00"),
		ServiceName: "Балансировка",
		Status:      domain.StatusConfirmed,
	})
	require.NoError(t, err)
	_, err = bookings.Create(ctx, &domain.Booking{
		UserID:      2,
		TimeKind:    domain.TimeKindFixedSlot,
		Date:        day1,
		TimeSlot:    mustSlot(t, "09:00"),
		ServiceName: "Балансировка",
		Status:      domain.StatusCancelled,
	})
	require.NoError(t, err)

	// Слот 10:00 закрыт админом
	reason := "инвентаризация"
	_, err = configs.Upsert(ctx, &domain.TimeSlotConfig{
		Date:        day1,
		TimeSlot:    mustSlot(t, "10:00"),
		MaxCapacity: 3,
		IsActive:    false,
		Reason:      &reason,
	})
	require.NoError(t, err)

	resp, err := uc.Execute(ctx, &Request{
		StartDate: day1,
		EndDate:   day1.AddDate(0, 0, 1),
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-09-15", resp.StartDate)
	assert.Equal(t, "2026-09-16", resp.EndDate)
	require.Len(t, resp.Days, 2)

	first := resp.Days[0]
	require.Len(t, first.Slots, 2) // 09:00, 10:00

	// Отменённое бронирование видно в ячейке, но места не занимает
	nine := first.Slots[0]
	assert.Equal(t, "09:00", nine.TimeSlot)
	assert.Equal(t, 1, nine.Taken)
	assert.Len(t, nine.Bookings, 2)
	assert.Equal(t, domain.DefaultSlotCapacity, nine.MaxCapacity)

	ten := first.Slots[1]
	assert.False(t, ten.IsActive)
	assert.Equal(t, 3, ten.MaxCapacity)
	require.NotNil(t, ten.Reason)
	assert.Equal(t, reason, *ten.Reason)

	// Второй день пустой, с дефолтными политиками
	second := resp.Days[1]
	assert.Equal(t, "2026-09-16", second.Date)
	for _, cell := range second.Slots {
		assert.True(t, cell.IsActive)
		assert.Zero(t, cell.Taken)
		assert.Empty(t, cell.Bookings)
	}
}

func TestExecute_RangeBookings(t *testing.T) {
	uc, bookings, _ := newFixture(t)
	ctx := context.Background()
	day := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	start := day.Add(10 * time.Hour)
	end := start.Add(3 * time.Hour)
	_, err := bookings.Create(ctx, &domain.Booking{
		UserID:      3,
		TimeKind:    domain.TimeKindRange,
		StartAt:     &start,
		EndAt:       &end,
		ServiceName: "Правка диска",
		Status:      domain.StatusPending,
	})
	require.NoError(t, err)

	// Интервальное бронирование за пределами периода не попадает в календарь
	farStart := day.AddDate(0, -2, 0).Add(12 * time.Hour)
	farEnd := farStart.Add(2 * time.Hour)
	_, err = bookings.Create(ctx, &domain.Booking{
		UserID:      4,
		TimeKind:    domain.TimeKindRange,
		StartAt:     &farStart,
		EndAt:       &farEnd,
		ServiceName: "Правка диска",
		Status:      domain.StatusPending,
	})
	require.NoError(t, err)

	resp, err := uc.Execute(ctx, &Request{StartDate: day, EndDate: day})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	// Интервальные бронирования выводятся отдельно от сетки слотов
	require.Len(t, resp.Days[0].RangeBookings, 1)
	rb := resp.Days[0].RangeBookings[0]
	assert.Equal(t, int64(3), rb.UserID)
	assert.True(t, rb.StartAt.Equal(start))
	for _, cell := range resp.Days[0].Slots {
		assert.Zero(t, cell.Taken)
	}
}

func TestExecute_InvalidRange(t *testing.T) {
	uc, _, _ := newFixture(t)
	ctx := context.Background()
	day := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(ctx, &Request{StartDate: day, EndDate: day.AddDate(0, 0, -1)})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = uc.Execute(ctx, &Request{StartDate: day, EndDate: day.AddDate(0, 0, 90)})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = uc.Execute(ctx, &Request{EndDate: day})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
