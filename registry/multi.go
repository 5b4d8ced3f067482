package registry

import "github.com/ipfs/go-cid"

// MultiStore reads from an ordered list of backends, returning the first
// hit. Writes go to the primary (first) backend only.
type MultiStore struct {
	backends []Store
}

var _ Store = (*MultiStore)(nil)

// NewMultiStore composes backends in lookup order.
func NewMultiStore(backends ...Store) *MultiStore {
	return &MultiStore{backends: backends}
}

func (m *MultiStore) Put(record []byte) (cid.Cid, error) {
	if len(m.backends) == 0 {
		return cid.Undef, ErrNotFound
	}
	return m.backends[0].Put(record)
}

func (m *MultiStore) Get(id cid.Cid) ([]byte, error) {
	var lastErr error = ErrNotFound
	for _, b := range m.backends {
		rec, err := b.Get(id)
		if err == nil {
			return rec, nil
		}
		if !IsNotFound(err) {
			lastErr = err
			continue
		}
	}
	return nil, lastErr
}

func (m *MultiStore) Has(id cid.Cid) bool {
	for _, b := range m.backends {
		if b.Has(id) {
			return true
		}
	}
	return false
}
