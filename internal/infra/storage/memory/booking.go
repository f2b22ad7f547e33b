package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WheelShopService/internal/infra/storage/booking"
)

// BookingStore in-memory репозиторий бронирований
type BookingStore struct {
	store *Store
}

// NewBookingStore создает in-memory репозиторий бронирований
func NewBookingStore(s *Store) *BookingStore {
	return &BookingStore{store: s}
}

// Create создает новое бронирование
func (r *BookingStore) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	b.ID = r.store.allocID()
	b.CreatedAt = now
	b.UpdatedAt = now

	r.store.bookings[b.ID] = *b
	return b, nil
}

// GetByID получает бронирование по ID
func (r *BookingStore) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	b, ok := r.store.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

// GetByUserID получает бронирования пользователя, опционально по статусу
func (r *BookingStore) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.store.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		copied := b
		result = append(result, &copied)
	}

	sortBookings(result)
	return result, nil
}

// ListWithFilter получает бронирования с фильтрацией
func (r *BookingStore) ListWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.store.bookings {
		if filter.UserID != nil && b.UserID != *filter.UserID {
			continue
		}
		if !matchesPeriod(&b, filter.StartDate, filter.EndDate) {
			continue
		}
		if filter.Status != nil {
			if b.Status != *filter.Status {
				continue
			}
		} else if !filter.IncludeCancelled && b.Status == domain.StatusCancelled {
			continue
		}
		copied := b
		result = append(result, &copied)
	}

	sortBookings(result)
	return result, nil
}

// ListForSlot получает неотменённые фиксированные бронирования слота
// Атомарность проверки допуска обеспечивается мьютексом TxManager
func (r *BookingStore) ListForSlot(_ context.Context, key domain.SlotKey) ([]*domain.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.store.bookings {
		bKey, ok := b.SlotKey()
		if !ok || bKey != key {
			continue
		}
		if b.Status == domain.StatusCancelled {
			continue
		}
		copied := b
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// UpdateStatus обновляет статус бронирования
func (r *BookingStore) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, ok := r.store.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}

	b.Status = status
	b.UpdatedAt = time.Now()
	r.store.bookings[id] = b
	return nil
}

// AssignEmployee назначает сотрудника на бронирование
func (r *BookingStore) AssignEmployee(_ context.Context, id int64, employeeID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, ok := r.store.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}

	b.AssignedEmployeeID = &employeeID
	b.UpdatedAt = time.Now()
	r.store.bookings[id] = b
	return nil
}

// Cancel отменяет бронирование с указанием причины
func (r *BookingStore) Cancel(_ context.Context, id int64, reason string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, ok := r.store.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}

	now := time.Now()
	b.Status = domain.StatusCancelled
	b.CancellationReason = &reason
	b.CancelledAt = &now
	b.UpdatedAt = now
	r.store.bookings[id] = b
	return nil
}

// matchesPeriod проверяет попадание бронирования в период:
// фиксированные по дате слота, диапазонные по дню start_at
func matchesPeriod(b *domain.Booking, start, end *time.Time) bool {
	if start == nil && end == nil {
		return true
	}

	day := b.Date
	if !b.IsFixedSlot() {
		if b.StartAt == nil {
			return false
		}
		day = time.Date(b.StartAt.Year(), b.StartAt.Month(), b.StartAt.Day(), 0, 0, 0, 0, time.UTC)
	}

	if start != nil && day.Before(*start) {
		return false
	}
	if end != nil && day.After(*end) {
		return false
	}
	return true
}

func sortBookings(bookings []*domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		a, b := bookings[i], bookings[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.TimeSlot != b.TimeSlot {
			return a.TimeSlot.IsBefore(b.TimeSlot)
		}
		return a.ID < b.ID
	})
}
