package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	userRepo "github.com/m04kA/SMC-WheelShopService/internal/infra/storage/user"
)

// UserStore in-memory репозиторий пользователей
type UserStore struct {
	store *Store
}

// NewUserStore создает in-memory репозиторий пользователей
func NewUserStore(s *Store) *UserStore {
	return &UserStore{store: s}
}

// Create создает нового пользователя, возвращает ErrEmailTaken при дубликате email
func (r *UserStore) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if existing.Email == u.Email {
			return nil, userRepo.ErrEmailTaken
		}
	}

	now := time.Now()
	u.ID = r.store.allocID()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.store.users[u.ID] = *u
	return u, nil
}

// GetByID получает пользователя по ID
func (r *UserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return &u, nil
}

// GetByEmail получает пользователя по email
func (r *UserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, userRepo.ErrUserNotFound
}

// ListByRole получает всех пользователей с указанной ролью
func (r *UserStore) ListByRole(_ context.Context, role domain.UserRole) ([]*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.User, 0)
	for _, u := range r.store.users {
		if u.Role != role {
			continue
		}
		copied := u
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}
