package session

import (
	"sync"

	"go.uber.org/zap"
)

// Manager opens one Store per client and keeps it for later requests
type Manager struct {
	slots     SlotProvider
	directory Directory
	logger    *zap.Logger
	opts      []Option

	mu     sync.RWMutex
	stores map[string]*Store
}

// NewManager creates a session manager over a slot backend
func NewManager(slots SlotProvider, directory Directory, logger *zap.Logger, opts ...Option) *Manager {
	return &Manager{
		slots:     slots,
		directory: directory,
		logger:    logger,
		opts:      opts,
		stores:    make(map[string]*Store),
	}
}

// Open returns the store for a client, rehydrating it on first use
func (m *Manager) Open(clientID string) *Store {
	m.mu.RLock()
	store, ok := m.stores[clientID]
	m.mu.RUnlock()
	if ok {
		return store
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[clientID]; ok {
		return store
	}

	store = NewStore(m.slots.Slot(clientID), m.directory, m.logger.With(zap.String("clientID", clientID)), m.opts...)
	m.stores[clientID] = store
	return store
}

// Evict drops cached stores so the next Open reads the slot again.
// Requests still holding a dropped store are forwarded to the live one.
func (m *Manager) Evict(clientIDs ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range clientIDs {
		if store, ok := m.stores[id]; ok {
			store.retire(m.opener(id), false)
			delete(m.stores, id)
		}
	}
	if len(clientIDs) > 0 {
		m.logger.Debug("Evicted session stores", zap.Int("count", len(clientIDs)))
	}
}

// Len returns the number of open stores
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.stores)
}

// EvictAnonymous drops cached stores that hold no identity. Clients without a
// cookie open a store on every visit, so these would otherwise pile up.
func (m *Manager) EvictAnonymous() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, store := range m.stores {
		if store.retire(m.opener(id), true) {
			delete(m.stores, id)
			evicted++
		}
	}
	return evicted
}

// opener returns a func that resolves the live store for a client
func (m *Manager) opener(clientID string) func() *Store {
	return func() *Store {
		return m.Open(clientID)
	}
}
