// Package memory in-memory реализация хранилища.
// Используется в тестах и при database.driver = "memory".
// Реализует те же наборы методов и возвращает те же sentinel-ошибки,
// что и postgres-репозитории, поэтому сервисы не видят разницы.
// Никогда не смешивается с postgres-хранилищем в одном процессе
package memory

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
)

// Store общее состояние всех in-memory репозиториев
type Store struct {
	mu sync.RWMutex

	bookings    map[int64]domain.Booking
	slotConfigs map[string]domain.TimeSlotConfig // ключ: SlotKey.String()
	users       map[int64]domain.User
	services    map[int64]domain.ShopService
	quotes      map[int64]domain.Quote
	invoices    map[int64]domain.Invoice
	leaves      map[int64]domain.LeaveRequest

	nextID int64
}

// NewStore создает пустое in-memory хранилище
func NewStore() *Store {
	return &Store{
		bookings:    make(map[int64]domain.Booking),
		slotConfigs: make(map[string]domain.TimeSlotConfig),
		users:       make(map[int64]domain.User),
		services:    make(map[int64]domain.ShopService),
		quotes:      make(map[int64]domain.Quote),
		invoices:    make(map[int64]domain.Invoice),
		leaves:      make(map[int64]domain.LeaveRequest),
	}
}

// allocID выдает следующий ID. Вызывать под mu
func (s *Store) allocID() int64 {
	s.nextID++
	return s.nextID
}

// SeedService добавляет услугу в каталог (для тестов и локальной разработки)
func (s *Store) SeedService(svc domain.ShopService) domain.ShopService {
	s.mu.Lock()
	defer s.mu.Unlock()
	if svc.ID == 0 {
		svc.ID = s.allocID()
	}
	s.services[svc.ID] = svc
	return svc
}

// TxManager транзакционный менеджер для in-memory хранилища.
// Сериализует все "транзакции" глобальным мьютексом: этого достаточно,
// чтобы последовательность проверка-допуска -> вставка была атомарной
type TxManager struct {
	mu sync.Mutex
}

// NewTxManager создает новый in-memory transaction manager
func NewTxManager() *TxManager {
	return &TxManager{}
}

// Do выполняет fn под глобальным мьютексом транзакций
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// DoSerializable для in-memory хранилища эквивалентен Do
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

// DoReadOnly для in-memory хранилища эквивалентен Do
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}
