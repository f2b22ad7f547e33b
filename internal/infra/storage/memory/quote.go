package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	quoteRepo "github.com/m04kA/SMC-WheelShopService/internal/infra/storage/quote"
)

// QuoteStore in-memory репозиторий запросов на расчёт стоимости
type QuoteStore struct {
	store *Store
}

// NewQuoteStore создает in-memory репозиторий запросов
func NewQuoteStore(s *Store) *QuoteStore {
	return &QuoteStore{store: s}
}

// Create создает новый запрос на расчёт
func (r *QuoteStore) Create(_ context.Context, q *domain.Quote) (*domain.Quote, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	q.ID = r.store.allocID()
	q.CreatedAt = now
	q.UpdatedAt = now
	r.store.quotes[q.ID] = *q
	return q, nil
}

// GetByID получает запрос по ID
func (r *QuoteStore) GetByID(_ context.Context, id int64) (*domain.Quote, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	q, ok := r.store.quotes[id]
	if !ok {
		return nil, quoteRepo.ErrQuoteNotFound
	}
	return &q, nil
}

// List получает запросы с фильтрацией по пользователю и статусу
func (r *QuoteStore) List(_ context.Context, userID *int64, status *domain.QuoteStatus) ([]*domain.Quote, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.Quote, 0)
	for _, q := range r.store.quotes {
		if userID != nil && q.UserID != *userID {
			continue
		}
		if status != nil && q.Status != *status {
			continue
		}
		copied := q
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

// Review записывает ответ админа: цену, заметки и новый статус
func (r *QuoteStore) Review(_ context.Context, id int64, status domain.QuoteStatus, price *float64, adminNotes *string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	q, ok := r.store.quotes[id]
	if !ok {
		return quoteRepo.ErrQuoteNotFound
	}

	q.Status = status
	if price != nil {
		q.Price = price
	}
	if adminNotes != nil {
		q.AdminNotes = adminNotes
	}
	q.UpdatedAt = time.Now()
	r.store.quotes[id] = q
	return nil
}
