package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WheelShopService/pkg/types"
)

func TestBookingStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to completed", StatusPending, StatusCompleted, false},
		{"confirmed to completed", StatusConfirmed, StatusCompleted, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed to pending", StatusConfirmed, StatusPending, false},
		{"completed is terminal", StatusCompleted, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusPending, false},
		{"cancelled to cancelled", StatusCancelled, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingStatusIsValid(t *testing.T) {
	for _, s := range []BookingStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled} {
		assert.True(t, s.IsValid(), "status %s", s)
	}
	assert.False(t, BookingStatus("unknown").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}

func TestBookingSlotKey(t *testing.T) {
	slot, err := types.NewTimeStringFromString("10:00")
	require.NoError(t, err)

	// У фиксированного бронирования ключ отбрасывает время суток у даты
	b := &Booking{
		TimeKind: TimeKindFixedSlot,
		Date:     time.Date(2026, 9, 15, 13, 45, 12, 0, time.UTC),
		TimeSlot: slot,
	}

	key, ok := b.SlotKey()
	require.True(t, ok)
	assert.Equal(t, "2026-09-15|10:00", key.String())
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), key.Date)

	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	rangeBooking := &Booking{
		TimeKind: TimeKindRange,
		StartAt:  &start,
		EndAt:    &end,
	}

	_, ok = rangeBooking.SlotKey()
	assert.False(t, ok)
}

func TestBookingCountsTowardCapacity(t *testing.T) {
	slot, err := types.NewTimeStringFromString("11:00")
	require.NoError(t, err)

	fixed := &Booking{
		TimeKind: TimeKindFixedSlot,
		Date:     time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		TimeSlot: slot,
		Status:   StatusPending,
	}
	assert.True(t, fixed.CountsTowardCapacity())

	fixed.Status = StatusConfirmed
	assert.True(t, fixed.CountsTowardCapacity())

	// Отменённое бронирование освобождает место в слоте
	fixed.Status = StatusCancelled
	assert.False(t, fixed.CountsTowardCapacity())

	start := time.Now()
	end := start.Add(time.Hour)
	ranged := &Booking{
		TimeKind: TimeKindRange,
		StartAt:  &start,
		EndAt:    &end,
		Status:   StatusPending,
	}
	assert.False(t, ranged.CountsTowardCapacity())
}

func TestBookingCanBeCancelled(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).CanBeCancelled())
	assert.True(t, (&Booking{Status: StatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCompleted}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCancelled}).CanBeCancelled())
}
