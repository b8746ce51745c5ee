package session

import (
	"context"
	"sync"

	"resqall/internal/core/domain"
)

// Slot is the key-value cell an identity is mirrored into.
// Load returns nil data and a nil error when the slot is empty.
type Slot interface {
	Load() ([]byte, error)
	Save(data []byte) error
	Clear() error
}

// SlotProvider opens the slot belonging to a client id
type SlotProvider interface {
	Slot(clientID string) Slot
}

// Directory resolves identities by email
type Directory interface {
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
}

// MemorySlot is an in-process Slot
type MemorySlot struct {
	mu   sync.Mutex
	data []byte
}

// NewMemorySlot creates an empty memory slot
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (m *MemorySlot) Load() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return nil, nil
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, nil
}

func (m *MemorySlot) Save(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = make([]byte, len(data))
	copy(m.data, data)
	return nil
}

func (m *MemorySlot) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = nil
	return nil
}

// MemorySlots hands out one MemorySlot per client id
type MemorySlots struct {
	mu    sync.Mutex
	slots map[string]*MemorySlot
}

// NewMemorySlots creates an empty in-process slot provider
func NewMemorySlots() *MemorySlots {
	return &MemorySlots{slots: make(map[string]*MemorySlot)}
}

func (p *MemorySlots) Slot(clientID string) Slot {
	p.mu.Lock()
	defer p.mu.Unlock()

	slot, ok := p.slots[clientID]
	if !ok {
		slot = NewMemorySlot()
		p.slots[clientID] = slot
	}
	return slot
}
