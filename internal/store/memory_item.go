package store

import (
	"context"
	"sort"
	"sync"

	"github.com/MKhiriev/go-task-tracker/models"
)

// memoryItemRepository keeps items in a map guarded by a RWMutex. It is the
// default backend when no database is configured.
type memoryItemRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]models.Item
}

// NewMemoryItemRepository returns an empty in-memory [ItemRepository].
func NewMemoryItemRepository() ItemRepository {
	return &memoryItemRepository{
		nextID: 1,
		items:  make(map[int64]models.Item),
	}
}

func (m *memoryItemRepository) CreateItem(_ context.Context, item models.Item) (models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item.ID = m.nextID
	m.nextID++
	m.items[item.ID] = cloneItem(item)

	return item, nil
}

func (m *memoryItemRepository) GetItem(_ context.Context, id int64) (models.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[id]
	if !ok {
		return models.Item{}, ErrItemNotFound
	}
	return cloneItem(item), nil
}

func (m *memoryItemRepository) ListItems(_ context.Context, opts models.ItemListOptions) ([]models.Item, error) {
	m.mu.RLock()
	ids := make([]int64, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	if opts.Offset > 0 {
		if opts.Offset >= len(ids) {
			ids = ids[:0]
		} else {
			ids = ids[opts.Offset:]
		}
	}
	if opts.Limit > 0 && opts.Limit < len(ids) {
		ids = ids[:opts.Limit]
	}

	items := make([]models.Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, cloneItem(m.items[id]))
	}
	m.mu.RUnlock()

	return items, nil
}

func (m *memoryItemRepository) UpdateItem(_ context.Context, item models.Item) (models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.items[item.ID]
	if !ok {
		return models.Item{}, ErrItemNotFound
	}

	stored.Name = item.Name
	stored.Description = item.Description
	stored.Price = item.Price
	stored.UpdatedAt = item.UpdatedAt
	stored = cloneItem(stored)
	m.items[item.ID] = stored

	return cloneItem(stored), nil
}

func (m *memoryItemRepository) DeleteItem(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return ErrItemNotFound
	}
	delete(m.items, id)
	return nil
}

// cloneItem copies the pointer fields so callers cannot mutate stored state.
func cloneItem(item models.Item) models.Item {
	item.Description = clonePtr(item.Description)
	item.Price = clonePtr(item.Price)
	item.OwnerID = clonePtr(item.OwnerID)
	return item
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
