package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	leaveRepo "github.com/m04kA/SMC-WheelShopService/internal/infra/storage/leave"
)

// LeaveStore in-memory репозиторий заявок на отпуск
type LeaveStore struct {
	store *Store
}

// NewLeaveStore создает in-memory репозиторий заявок на отпуск
func NewLeaveStore(s *Store) *LeaveStore {
	return &LeaveStore{store: s}
}

// Create создает новую заявку на отпуск
func (r *LeaveStore) Create(_ context.Context, l *domain.LeaveRequest) (*domain.LeaveRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	l.ID = r.store.allocID()
	l.CreatedAt = now
	l.UpdatedAt = now
	r.store.leaves[l.ID] = *l
	return l, nil
}

// GetByID получает заявку по ID
func (r *LeaveStore) GetByID(_ context.Context, id int64) (*domain.LeaveRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	l, ok := r.store.leaves[id]
	if !ok {
		return nil, leaveRepo.ErrLeaveNotFound
	}
	return &l, nil
}

// List получает заявки с фильтрацией по сотруднику и статусу
func (r *LeaveStore) List(_ context.Context, employeeID *int64, status *domain.LeaveStatus) ([]*domain.LeaveRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.LeaveRequest, 0)
	for _, l := range r.store.leaves {
		if employeeID != nil && l.EmployeeID != *employeeID {
			continue
		}
		if status != nil && l.Status != *status {
			continue
		}
		copied := l
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.After(result[j].StartDate) })
	return result, nil
}

// Review записывает решение по заявке: статус и проверяющего
func (r *LeaveStore) Review(_ context.Context, id int64, status domain.LeaveStatus, reviewedBy int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	l, ok := r.store.leaves[id]
	if !ok {
		return leaveRepo.ErrLeaveNotFound
	}

	l.Status = status
	l.ReviewedBy = &reviewedBy
	l.UpdatedAt = time.Now()
	r.store.leaves[id] = l
	return nil
}
