package registry

import (
	"sync"

	"github.com/ipfs/go-cid"
)

// MemoryStore is an in-process Store, safe for concurrent use. Intended for
// tests and single-process daemons.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[cid.Cid][]byte
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[cid.Cid][]byte)}
}

func (m *MemoryStore) Put(record []byte) (cid.Cid, error) {
	id, err := CheckRecord(record)
	if err != nil {
		return cid.Undef, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		m.records[id] = append([]byte(nil), record...)
	}
	return id, nil
}

func (m *MemoryStore) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, ErrInvalidCID
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (m *MemoryStore) Has(id cid.Cid) bool {
	if !id.Defined() {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.records[id]
	return ok
}
