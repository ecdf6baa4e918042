package devapi

import (
	"maps"
	"slices"
	"sync"
)

// MemoryStorage holds objects in maps guarded by a mutex.
type MemoryStorage struct {
	mu      sync.RWMutex
	nextID  int64
	objects map[string]map[int64]map[string]any
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string]map[int64]map[string]any)}
}

func (m *MemoryStorage) List(kind string) ([]Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byID := m.objects[kind]
	out := make([]Object, 0, len(byID))
	for _, id := range slices.Sorted(maps.Keys(byID)) {
		out = append(out, Object{ID: id, Data: maps.Clone(byID[id])})
	}
	return out, nil
}

func (m *MemoryStorage) Get(kind string, id int64) (Object, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.objects[kind][id]
	if !ok {
		return Object{}, false, nil
	}
	return Object{ID: id, Data: maps.Clone(data)}, true, nil
}

func (m *MemoryStorage) Create(kind string, data map[string]any) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	if m.objects[kind] == nil {
		m.objects[kind] = make(map[int64]map[string]any)
	}
	m.objects[kind][m.nextID] = maps.Clone(data)
	return m.nextID, nil
}

func (m *MemoryStorage) Replace(kind string, id int64, data map[string]any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[kind][id]; !ok {
		return false, nil
	}
	m.objects[kind][id] = maps.Clone(data)
	return true, nil
}

func (m *MemoryStorage) Delete(kind string, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[kind][id]; !ok {
		return false, nil
	}
	delete(m.objects[kind], id)
	return true, nil
}

func (m *MemoryStorage) Close() error { return nil }

var _ Storage = (*MemoryStorage)(nil)
