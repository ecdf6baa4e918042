package store

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

var (
	// ErrKeyNotFound is returned when a (namespaced) key is not stored.
	ErrKeyNotFound = errors.New("key not found")
	// ErrValidation is returned when a registered validator rejects a value.
	ErrValidation = errors.New("invalid value")
	// ErrPersistence is returned when the store cannot be written out.
	ErrPersistence = errors.New("cannot persist store")
)

// Validator checks a value before it is stored under a key.
type Validator func(value any) error

// backend writes a full snapshot of the entries somewhere.
type backend interface {
	save(entries map[string]any) error
}

// Store is a namespaced key-value mapping that persists itself on every write.
type Store struct {
	mu sync.Mutex

	prefix     string
	keys       []string // insertion order
	entries    map[string]any
	validators map[string]Validator
	backend    backend
}

func newStore(b backend, data map[string]any) *Store {
	s := &Store{
		entries:    make(map[string]any, len(data)),
		validators: make(map[string]Validator),
		backend:    b,
	}
	// JSON objects carry no order; sort so Keys is stable across loads.
	for _, k := range slices.Sorted(maps.Keys(data)) {
		s.put(k, data[k])
	}
	return s
}

// Prefix returns the namespace applied to keys, or "" when there is none.
func (s *Store) Prefix() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefix
}

// SetPrefix changes the namespace used by subsequent calls.
func (s *Store) SetPrefix(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefix = prefix
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.entries[s.prefixKey(key)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, s.prefixKey(key))
	}
	return v, nil
}

// GetString returns the value stored under key, which must be a string.
func (s *Store) GetString(key string) (string, error) {
	v, err := s.Get(key)
	if err != nil {
		return "", err
	}
	str, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s holds %T, not a string", ErrValidation, key, v)
	}
	return str, nil
}

// Contains reports whether key is stored.
func (s *Store) Contains(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[s.prefixKey(key)]
	return ok
}

// Set validates value, stores it under key and writes the whole store out.
//
// The value is kept in its JSON form: numbers become json.Number and structs
// become maps, exactly as a reload would return them. A value that cannot be
// encoded is rejected with ErrValidation.
//
// A rejected value leaves the store untouched. When the write fails the new
// value is kept in memory and the error wraps ErrPersistence; callers that
// need memory and disk to agree should reload.
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := normalize(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrValidation, key, err)
	}
	if validate, ok := s.validators[s.unprefixKey(key)]; ok {
		if err := validate(v); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrValidation, key, err)
		}
	}
	s.put(s.prefixKey(key), v)
	return s.persist()
}

// Delete removes key and writes the whole store out.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := s.prefixKey(key)
	if _, ok := s.entries[k]; !ok {
		return fmt.Errorf("%w: %q", ErrKeyNotFound, k)
	}
	delete(s.entries, k)
	s.keys = slices.DeleteFunc(s.keys, func(existing string) bool { return existing == k })
	return s.persist()
}

// SetValidator registers fn to run before every later Set on key.
// Values already stored are not checked.
func (s *Store) SetValidator(key string, fn Validator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.validators[s.unprefixKey(key)] = fn
}

// Export returns a copy of every stored pair, keys in their prefixed form.
func (s *Store) Export() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.entries)
}

// BulkUpdate stores every pair of data verbatim and writes the store once.
//
// Keys are taken as-is (an exported snapshot already carries its prefixes)
// and validators are not consulted. Values are converted as in Set, and one
// value that cannot be encoded rejects the whole update.
func (s *Store) BulkUpdate(data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := make(map[string]any, len(data))
	for k, v := range data {
		nv, err := normalize(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrValidation, k, err)
		}
		normalized[k] = nv
	}
	for _, k := range slices.Sorted(maps.Keys(normalized)) {
		s.put(k, normalized[k])
	}
	return s.persist()
}

// Keys lists the keys of the current namespace, without their prefix, in the
// order they were first stored.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.keys))
	for _, k := range s.keys {
		if s.prefix == "" {
			out = append(out, k)
			continue
		}
		if rest, ok := strings.CutPrefix(k, s.prefix+"-"); ok {
			out = append(out, rest)
		}
	}
	return out
}

// String renders the exported snapshot.
func (s *Store) String() string {
	return fmt.Sprint(s.Export())
}

func (s *Store) put(k string, v any) {
	if _, exists := s.entries[k]; !exists {
		s.keys = append(s.keys, k)
	}
	s.entries[k] = v
}

func (s *Store) persist() error {
	if err := s.backend.save(maps.Clone(s.entries)); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// prefixKey namespaces key unless it already carries the prefix.
func (s *Store) prefixKey(key string) string {
	if s.prefix == "" || strings.HasPrefix(key, s.prefix+"-") {
		return key
	}
	return s.prefix + "-" + key
}

func (s *Store) unprefixKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return strings.TrimPrefix(key, s.prefix+"-")
}
