package registry

import (
	"sync"

	"github.com/ipfs/go-cid"

	"xdao.co/deid/address"
	"xdao.co/deid/identifier"
	"xdao.co/deid/meta"
)

// Registry binds identifiers to meta records held in a Store.
//
// The store holds records keyed by CID; the registry maintains the
// identifier -> CID index on top. Registration is the only write path and
// re-verifies the meta before indexing, so an indexed identifier always
// resolves to a record that matches it.
type Registry struct {
	store Store

	mu    sync.RWMutex
	index map[string]cid.Cid
}

// ResolutionState classifies the outcome of a Resolve call.
type ResolutionState string

const (
	// StateResolved means the record was found and re-verified against the identifier.
	StateResolved ResolutionState = "resolved"
	// StateUnresolved means no record is indexed for the identifier.
	StateUnresolved ResolutionState = "unresolved"
	// StateMismatch means an indexed record no longer verifies against the identifier.
	StateMismatch ResolutionState = "mismatch"
)

// Resolution is a compact, Go-friendly view of a lookup outcome.
//
// Matched reports the consensus check: whether the stored meta re-derives the
// queried identifier. Meta is populated only when State is StateResolved.
type Resolution struct {
	State        ResolutionState
	Identifier   identifier.Identifier
	RecordCID    cid.Cid
	Network      address.NetworkType
	SearchNumber uint32
	Matched      bool
	Meta         *meta.Meta
}

// New constructs a Registry over the given store.
func New(store Store) *Registry {
	return &Registry{
		store: store,
		index: make(map[string]cid.Cid),
	}
}

// Register verifies the record, stores it, derives the identifier for the
// given network, and indexes it.
//
// Registration is idempotent: re-registering the same record for the same
// network returns the same identifier and CID. Re-binding an identifier to a
// different record is rejected with ErrImmutable.
func (r *Registry) Register(record []byte, network address.NetworkType) (identifier.Identifier, cid.Cid, error) {
	m, err := meta.ParseRecord(record)
	if err != nil {
		return identifier.Identifier{}, cid.Undef, err
	}
	id, err := m.GenerateIdentifier(network)
	if err != nil {
		return identifier.Identifier{}, cid.Undef, err
	}
	recordCID, err := r.store.Put(record)
	if err != nil {
		return identifier.Identifier{}, cid.Undef, err
	}

	key := id.String()
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.index[key]; ok {
		if prev != recordCID {
			return identifier.Identifier{}, cid.Undef, ErrImmutable
		}
		return id, recordCID, nil
	}
	r.index[key] = recordCID
	return id, recordCID, nil
}

// Resolve looks up the meta record bound to an identifier and re-verifies the
// binding.
//
// A missing binding yields StateUnresolved with a nil error; transport and
// store failures are returned as errors. A record that no longer matches the
// identifier yields StateMismatch.
func (r *Registry) Resolve(text string) (*Resolution, error) {
	id, err := identifier.Parse(text)
	if err != nil {
		return nil, err
	}

	res := &Resolution{
		State:        StateUnresolved,
		Identifier:   id,
		Network:      id.Type(),
		SearchNumber: id.Number(),
	}

	r.mu.RLock()
	recordCID, ok := r.index[id.String()]
	r.mu.RUnlock()
	if !ok {
		return res, nil
	}

	record, err := r.store.Get(recordCID)
	if err != nil {
		if IsNotFound(err) {
			return res, nil
		}
		return nil, err
	}
	m, err := meta.ParseRecord(record)
	if err != nil {
		return nil, err
	}

	res.RecordCID = recordCID
	if !m.MatchIdentifier(id) {
		res.State = StateMismatch
		return res, nil
	}
	res.State = StateResolved
	res.Matched = true
	res.Meta = &m
	return res, nil
}

// Lookup returns the CID indexed for an identifier, if any.
func (r *Registry) Lookup(id identifier.Identifier) (cid.Cid, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.index[id.String()]
	return c, ok
}
