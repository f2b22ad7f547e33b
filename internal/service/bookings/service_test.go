package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	"github.com/m04kA/SMC-WheelShopService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-WheelShopService/internal/service/bookings/models"
	"github.com/m04kA/SMC-WheelShopService/pkg/ptr"
	"github.com/m04kA/SMC-WheelShopService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	svc      *Service
	bookings *memory.BookingStore
	users    *memory.UserStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	bookings := memory.NewBookingStore(store)
	users := memory.NewUserStore(store)

	return &fixture{
		svc:      NewService(bookings, users, nil, nopLogger{}),
		bookings: bookings,
		users:    users,
	}
}

func (f *fixture) seedBooking(t *testing.T, userID int64, status domain.BookingStatus) *domain.Booking {
	t.Helper()

	slot, err := types.NewTimeStringFromString("10:00")
	require.NoError(t, err)
	b, err := f.bookings.Create(context.Background(), &domain.Booking{
		UserID:       userID,
		ServiceID:    1,
		TimeKind:     domain.TimeKindFixedSlot,
		Date:         time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		TimeSlot:     slot,
		VehicleBrand: "Lada",
		ServiceName:  "Балансировка",
		Status:       status,
	})
	require.NoError(t, err)
	return b
}

func (f *fixture) seedUser(t *testing.T, role domain.UserRole) *domain.User {
	t.Helper()

	u, err := f.users.Create(context.Background(), &domain.User{
		Name:  "Сотрудник",
		Email: string(role) + "@example.com",
		Role:  role,
	})
	require.NoError(t, err)
	return u
}

func TestGetByID_Access(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.seedBooking(t, 1, domain.StatusPending)

	// Владелец видит своё бронирование
	resp, err := f.svc.GetByID(ctx, b.ID, 1, domain.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, b.ID, resp.ID)

	// Чужому клиенту отказано, сотруднику доступно
	_, err = f.svc.GetByID(ctx, b.ID, 2, domain.RoleCustomer)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetByID(ctx, b.ID, 2, domain.RoleStaff)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(ctx, 9999, 1, domain.RoleCustomer)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("owner cancels pending", func(t *testing.T) {
		b := f.seedBooking(t, 1, domain.StatusPending)
		err := f.svc.Cancel(ctx, b.ID, domain.RoleCustomer,
			&models.CancelBookingRequest{UserID: 1, CancellationReason: "передумал"})
		require.NoError(t, err)

		got, err := f.bookings.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, got.Status)
	})

	t.Run("stranger denied", func(t *testing.T) {
		b := f.seedBooking(t, 1, domain.StatusPending)
		err := f.svc.Cancel(ctx, b.ID, domain.RoleCustomer,
			&models.CancelBookingRequest{UserID: 2})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("staff cancels someone else's booking", func(t *testing.T) {
		b := f.seedBooking(t, 1, domain.StatusConfirmed)
		err := f.svc.Cancel(ctx, b.ID, domain.RoleStaff,
			&models.CancelBookingRequest{UserID: 5, CancellationReason: "мастер заболел"})
		assert.NoError(t, err)
	})

	t.Run("completed cannot be cancelled", func(t *testing.T) {
		b := f.seedBooking(t, 1, domain.StatusCompleted)
		err := f.svc.Cancel(ctx, b.ID, domain.RoleCustomer,
			&models.CancelBookingRequest{UserID: 1})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("double cancel rejected", func(t *testing.T) {
		b := f.seedBooking(t, 1, domain.StatusCancelled)
		err := f.svc.Cancel(ctx, b.ID, domain.RoleCustomer,
			&models.CancelBookingRequest{UserID: 1})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := f.seedBooking(t, 1, domain.StatusPending)

	require.NoError(t, f.svc.UpdateStatus(ctx, b.ID, &models.UpdateStatusRequest{Status: "confirmed"}))
	require.NoError(t, f.svc.UpdateStatus(ctx, b.ID, &models.UpdateStatusRequest{Status: "completed"}))

	// Из терминального статуса переходов нет
	err := f.svc.UpdateStatus(ctx, b.ID, &models.UpdateStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	err = f.svc.UpdateStatus(ctx, b.ID, &models.UpdateStatusRequest{Status: "galactic"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = f.svc.UpdateStatus(ctx, 9999, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestAssignEmployee(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := f.seedBooking(t, 1, domain.StatusConfirmed)
	staff := f.seedUser(t, domain.RoleStaff)
	customer := f.seedUser(t, domain.RoleCustomer)

	require.NoError(t, f.svc.AssignEmployee(ctx, b.ID, &models.AssignEmployeeRequest{EmployeeID: staff.ID}))

	got, err := f.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AssignedEmployeeID)
	assert.Equal(t, staff.ID, *got.AssignedEmployeeID)

	// Клиента назначить нельзя
	err = f.svc.AssignEmployee(ctx, b.ID, &models.AssignEmployeeRequest{EmployeeID: customer.ID})
	assert.ErrorIs(t, err, ErrNotAnEmployee)

	err = f.svc.AssignEmployee(ctx, b.ID, &models.AssignEmployeeRequest{EmployeeID: 9999})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func (f *fixture) seedRangeBooking(t *testing.T, userID int64, start, end time.Time) *domain.Booking {
	t.Helper()

	b, err := f.bookings.Create(context.Background(), &domain.Booking{
		UserID:       userID,
		ServiceID:    1,
		TimeKind:     domain.TimeKindRange,
		StartAt:      &start,
		EndAt:        &end,
		VehicleBrand: "Lada",
		ServiceName:  "Балансировка",
		Status:       domain.StatusPending,
	})
	require.NoError(t, err)
	return b
}

func TestListBookings_Filter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedBooking(t, 1, domain.StatusPending)
	f.seedBooking(t, 1, domain.StatusCancelled)
	f.seedBooking(t, 2, domain.StatusConfirmed)

	// По умолчанию отменённые не включаются
	all, err := f.svc.ListBookings(ctx, &models.ListBookingsRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Bookings, 2)

	withCancelled, err := f.svc.ListBookings(ctx, &models.ListBookingsRequest{IncludeCancelled: true})
	require.NoError(t, err)
	assert.Len(t, withCancelled.Bookings, 3)

	mine, err := f.svc.ListBookings(ctx, &models.ListBookingsRequest{UserID: ptr.Ptr(int64(2))})
	require.NoError(t, err)
	require.Len(t, mine.Bookings, 1)
	assert.Equal(t, int64(2), mine.Bookings[0].UserID)
}

func TestListBookings_PeriodFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	fixed := f.seedBooking(t, 1, domain.StatusPending)
	january := f.seedRangeBooking(t, 1,
		time.Date(2026, 1, 10, 11, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 10, 13, 0, 0, 0, time.UTC))

	// Диапазонное бронирование вне периода не попадает в выборку
	march, err := f.svc.ListBookings(ctx, &models.ListBookingsRequest{
		StartDate: ptr.Ptr(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
		EndDate:   ptr.Ptr(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	assert.Empty(t, march.Bookings)

	// Диапазонное бронирование отбирается по дню start_at
	winter, err := f.svc.ListBookings(ctx, &models.ListBookingsRequest{
		StartDate: ptr.Ptr(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
		EndDate:   ptr.Ptr(time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	require.Len(t, winter.Bookings, 1)
	assert.Equal(t, january.ID, winter.Bookings[0].ID)

	// Фиксированное бронирование отбирается по дате слота
	september, err := f.svc.ListBookings(ctx, &models.ListBookingsRequest{
		StartDate: ptr.Ptr(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)),
		EndDate:   ptr.Ptr(time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	require.Len(t, september.Bookings, 1)
	assert.Equal(t, fixed.ID, september.Bookings[0].ID)
}
