package store

// memoryBackend drops every snapshot.
type memoryBackend struct{}

func (memoryBackend) save(map[string]any) error { return nil }

// NewMemory returns an empty store namespaced by identity that never
// persists anything. It is meant for tests.
func NewMemory(identity string) *Store {
	s := newStore(memoryBackend{}, nil)
	s.SetPrefix(identity)
	return s
}

// LoadMemory mirrors Load for memory stores: there is nothing to read, so the
// result is always empty.
func LoadMemory(identity string) (*Store, error) {
	return NewMemory(identity), nil
}
