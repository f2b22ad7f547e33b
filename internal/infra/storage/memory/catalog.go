package memory

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-WheelShopService/internal/infra/storage/catalog"
)

// CatalogStore in-memory репозиторий каталога услуг
type CatalogStore struct {
	store *Store
}

// NewCatalogStore создает in-memory репозиторий каталога
func NewCatalogStore(s *Store) *CatalogStore {
	return &CatalogStore{store: s}
}

// GetByID получает услугу по ID
func (r *CatalogStore) GetByID(_ context.Context, id int64) (*domain.ShopService, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	svc, ok := r.store.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return &svc, nil
}

// ListActive получает все активные услуги каталога
func (r *CatalogStore) ListActive(_ context.Context) ([]*domain.ShopService, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.ShopService, 0)
	for _, svc := range r.store.services {
		if !svc.Active {
			continue
		}
		copied := svc
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}
