package domain

import (
	"time"

	"github.com/m04kA/SMC-WheelShopService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// bookingTransitions допустимые переходы статусов
// completed и cancelled терминальные: выхода из них нет
var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// IsValid returns true if the status is a known booking status
func (s BookingStatus) IsValid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

// CanTransitionTo returns true if the transition s -> next is allowed
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// BookingTimeKind вид времени бронирования
// fixed_slot: фиксированный слот (date + timeSlot), учитывается в capacity
// time_range: произвольный интервал (start/end), политиками слотов не управляется
type BookingTimeKind string

const (
	TimeKindFixedSlot BookingTimeKind = "fixed_slot"
	TimeKindRange     BookingTimeKind = "time_range"
)

// Booking represents a wheel-shop service booking
type Booking struct {
	ID        int64
	UserID    int64
	ServiceID int64

	TimeKind BookingTimeKind

	// Заполнены для TimeKindFixedSlot
	Date     time.Time
	TimeSlot types.TimeString

	// Заполнены для TimeKindRange (унаследованные бронирования)
	StartAt *time.Time
	EndAt   *time.Time

	VehicleBrand string
	VehiclePlate string
	Status       BookingStatus

	AssignedEmployeeID *int64
	Notes              *string

	// Denormalized service data for history
	ServiceName  string
	ServicePrice float64

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFixedSlot returns true if the booking occupies a fixed time slot
func (b *Booking) IsFixedSlot() bool {
	return b.TimeKind == TimeKindFixedSlot
}

// SlotKey returns the canonical (date, timeSlot) key of a fixed-slot booking
// For range bookings returns ok=false: they are not governed by slot policies
func (b *Booking) SlotKey() (SlotKey, bool) {
	if !b.IsFixedSlot() {
		return SlotKey{}, false
	}
	return NewSlotKey(b.Date, b.TimeSlot), true
}

// CountsTowardCapacity returns true if the booking consumes slot capacity
func (b *Booking) CountsTowardCapacity() bool {
	return b.IsFixedSlot() && b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status.CanTransitionTo(StatusCancelled)
}

// IsTerminal returns true if the booking is in a terminal state
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	UserID           *int64
	StartDate        *time.Time     // Начало периода (опционально)
	EndDate          *time.Time     // Конец периода (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отменённые бронирования
}
