package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	invoiceRepo "github.com/m04kA/SMC-WheelShopService/internal/infra/storage/invoice"
)

// InvoiceStore in-memory репозиторий счетов
type InvoiceStore struct {
	store *Store
}

// NewInvoiceStore создает in-memory репозиторий счетов
func NewInvoiceStore(s *Store) *InvoiceStore {
	return &InvoiceStore{store: s}
}

// Create создает новый счёт
func (r *InvoiceStore) Create(_ context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.invoices {
		if existing.Number == inv.Number {
			return nil, invoiceRepo.ErrNumberTaken
		}
	}

	now := time.Now()
	inv.ID = r.store.allocID()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	r.store.invoices[inv.ID] = *inv
	return inv, nil
}

// GetByID получает счёт по ID
func (r *InvoiceStore) GetByID(_ context.Context, id int64) (*domain.Invoice, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	inv, ok := r.store.invoices[id]
	if !ok {
		return nil, invoiceRepo.ErrInvoiceNotFound
	}
	return &inv, nil
}

// List получает счета с фильтрацией по пользователю и статусу
func (r *InvoiceStore) List(_ context.Context, userID *int64, status *domain.InvoiceStatus) ([]*domain.Invoice, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.Invoice, 0)
	for _, inv := range r.store.invoices {
		if userID != nil && inv.UserID != *userID {
			continue
		}
		if status != nil && inv.Status != *status {
			continue
		}
		copied := inv
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].IssuedAt.After(result[j].IssuedAt) })
	return result, nil
}

// UpdateStatus обновляет статус счёта, для paid фиксирует paid_at
func (r *InvoiceStore) UpdateStatus(_ context.Context, id int64, status domain.InvoiceStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	inv, ok := r.store.invoices[id]
	if !ok {
		return invoiceRepo.ErrInvoiceNotFound
	}

	now := time.Now()
	inv.Status = status
	if status == domain.InvoiceStatusPaid {
		inv.PaidAt = &now
	}
	inv.UpdatedAt = now
	r.store.invoices[id] = inv
	return nil
}
