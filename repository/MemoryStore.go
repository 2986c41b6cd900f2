package repository

import "sync"

// MemoryStore is the in-process KeyValueStore used by tests and by local runs
// without redis. Last write wins, same as the redis-backed store.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
	}
}

func (s *MemoryStore) Get(key string) (value string, ok bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok = s.values[key]
	return
}

func (s *MemoryStore) Set(key string, value string) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return
}

func (s *MemoryStore) Delete(key string) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return
}
