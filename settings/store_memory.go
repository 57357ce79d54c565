package settings

import "sync"

// MemoryStore is the in-memory settings table, seeded with the
// documented defaults. Reads take the lock shared, writes exclusive.
type MemoryStore struct {
	mu    sync.RWMutex
	table map[SettingKey]Value
}

// NewMemoryStore creates a store seeded with a default entry for every
// known (namespace, key) pair.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{table: defaultSettings()}
}

func (s *MemoryStore) Read(namespace, key string) (Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.table[SettingKey{Namespace: namespace, Key: key}]
	if !ok {
		return Value{}, false
	}
	return v.Clone(), true
}

func (s *MemoryStore) ReadAll(namespaces []string) map[string]map[string]Value {
	filter := make(map[string]bool, len(namespaces))
	for _, ns := range namespaces {
		filter[ns] = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]map[string]Value)
	for k, v := range s.table {
		if len(filter) > 0 && !filter[k.Namespace] {
			continue
		}
		group, ok := result[k.Namespace]
		if !ok {
			group = make(map[string]Value)
			result[k.Namespace] = group
		}
		group[k.Key] = v.Clone()
	}

	return result
}

func (s *MemoryStore) Write(namespace, key string, value Value) error {
	// Validate before taking the write lock so a rejected value is
	// never observable in the table.
	if err := validate(namespace, key, value); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.table[SettingKey{Namespace: namespace, Key: key}] = value.Clone()

	return nil
}

// Len returns the current number of entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.table)
}
