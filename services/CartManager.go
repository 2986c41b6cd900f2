package services

import (
	"sync"

	"bakeShop/repository"

	"github.com/google/uuid"
)

const cartKeyPrefix = "bakeShop:cart:"

// CartManager hands out one CartStore per cart session. Stores are hydrated
// from storage on first use and kept for the life of the process; the storage
// key is derived from the session id, so a returning browser gets its cart
// back.
type CartManager struct {
	mu      sync.Mutex
	storage repository.KeyValueStore
	stores  map[string]*CartStore
}

func NewCartManager(storage repository.KeyValueStore) *CartManager {
	return &CartManager{
		storage: storage,
		stores:  make(map[string]*CartStore),
	}
}

// NewCartSession mints a fresh cart session id with an empty store behind it.
func (m *CartManager) NewCartSession() (cartSessionId string) {
	cartSessionId = uuid.NewString()
	m.mu.Lock()
	m.stores[cartSessionId] = NewCartStore(m.storage, cartKeyPrefix+cartSessionId)
	m.mu.Unlock()
	return
}

// Store returns the CartStore for a session, hydrating it from storage if this
// process has not seen the session yet.
func (m *CartManager) Store(cartSessionId string) *CartStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stores[cartSessionId]
	if !ok {
		s = NewCartStore(m.storage, cartKeyPrefix+cartSessionId)
		m.stores[cartSessionId] = s
	}
	return s
}
