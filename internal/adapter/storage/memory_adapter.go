package storage

import (
	"context"
	"sync"

	"github.com/b-it-bots/datahub/internal/core/domain"
	"github.com/b-it-bots/datahub/internal/port"
)

// MemoryAdapter is the default, process-local store. Items keep their
// insertion order. All writes are serialized by a single lock; reads may
// run concurrently with each other.
type MemoryAdapter struct {
	mu        sync.RWMutex
	seeded    bool
	items     []domain.InventoryItem
	index     map[string]int
	orders    []domain.Order
	locations map[string]domain.RobotLocation
	statuses  []domain.RobotStatus
}

// NewMemoryAdapter returns an unseeded store. Inventory operations fail
// with ErrStoreUninitialized until ApplySeed is called with a seed that
// carries an inventoryItems key.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		index:     make(map[string]int),
		locations: make(map[string]domain.RobotLocation),
	}
}

// ApplySeed installs the seed data. A seed without the inventoryItems key
// leaves the inventory uninitialized but still installs any orders.
func (m *MemoryAdapter) ApplySeed(seed *Seed) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if seed.Items != nil {
		m.seeded = true
		m.items = append([]domain.InventoryItem(nil), (*seed.Items)...)
		m.index = make(map[string]int, len(m.items))
		for i, item := range m.items {
			m.index[item.ID] = i
		}
	}
	m.orders = append([]domain.Order(nil), seed.Orders...)
}

func (m *MemoryAdapter) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.seeded {
		return nil, port.ErrStoreUninitialized
	}
	return append([]domain.InventoryItem(nil), m.items...), nil
}

func (m *MemoryAdapter) GetItem(ctx context.Context, id string) (domain.InventoryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.seeded {
		return domain.InventoryItem{}, port.ErrStoreUninitialized
	}
	i, ok := m.index[id]
	if !ok {
		return domain.InventoryItem{}, port.ErrNotFound
	}
	return m.items[i], nil
}

func (m *MemoryAdapter) UpsertItem(ctx context.Context, id string, item domain.InventoryItem) (domain.InventoryItem, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.seeded {
		return domain.InventoryItem{}, false, port.ErrStoreUninitialized
	}

	item.ID = id
	if i, ok := m.index[id]; ok {
		m.items[i] = item
		return item, false, nil
	}
	m.items = append(m.items, item)
	m.index[id] = len(m.items) - 1
	return item, true, nil
}

func (m *MemoryAdapter) PatchItem(ctx context.Context, id string, item domain.InventoryItem) (domain.InventoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.seeded {
		return domain.InventoryItem{}, port.ErrStoreUninitialized
	}
	i, ok := m.index[id]
	if !ok {
		return domain.InventoryItem{}, port.ErrNotFound
	}
	item.ID = id
	m.items[i] = item
	return item, nil
}

func (m *MemoryAdapter) ListOrders(ctx context.Context) ([]domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Order(nil), m.orders...), nil
}

func (m *MemoryAdapter) PutLocation(ctx context.Context, id string, loc domain.RobotLocation) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, existed := m.locations[id]
	loc.ID = id
	m.locations[id] = loc
	return !existed, nil
}

func (m *MemoryAdapter) AppendStatus(ctx context.Context, status domain.RobotStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.statuses = append(m.statuses, status)
	return nil
}

// Statuses returns the accumulated status reports.
func (m *MemoryAdapter) Statuses() []domain.RobotStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.RobotStatus(nil), m.statuses...)
}

// Location returns the current location report for a robot id.
func (m *MemoryAdapter) Location(id string) (domain.RobotLocation, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	loc, ok := m.locations[id]
	return loc, ok
}
