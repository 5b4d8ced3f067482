package meta

import (
	"xdao.co/deid/address"
	"xdao.co/deid/identifier"
)

// The consensus check: a relying party accepts a (meta, identifier) pair by
// recomputing the address under the meta's version rule and comparing
// byte-for-byte. These three operations are the entire surface other
// components call.

// MatchIdentifier reports whether id is consistent with this meta: the name
// must equal the seed (or be absent for keyless versions) and the address
// must re-derive exactly. Any failure is a plain false; there is nothing to
// retry.
func (m Meta) MatchIdentifier(id identifier.Identifier) bool {
	if m.IsZero() || id.IsZero() {
		return false
	}
	if m.version.HasSeed() {
		if m.seed != id.Name() {
			return false
		}
	} else if id.Name() != "" {
		return false
	}
	return m.MatchAddress(id.Address())
}

// MatchAddress reports whether addr re-derives from this meta under addr's
// own network type.
func (m Meta) MatchAddress(addr address.Address) bool {
	if m.IsZero() || addr.IsZero() || addr.IsBroadcast() {
		return false
	}
	expected, err := m.GenerateAddress(addr.Network())
	if err != nil {
		return false
	}
	return expected.Equal(addr)
}

// GenerateIdentifier builds the identifier this meta produces for a network
// type: seed-based versions get name@address, keyless versions the bare
// address.
func (m Meta) GenerateIdentifier(network address.NetworkType) (identifier.Identifier, error) {
	addr, err := m.GenerateAddress(network)
	if err != nil {
		return identifier.Identifier{}, err
	}
	return identifier.Compose(m.seed, addr, "")
}

// Equal reports whether two metas generate the same identifier, checked on
// the person network type.
func (m Meta) Equal(other Meta) bool {
	if m.IsZero() || other.IsZero() {
		return false
	}
	a, err := m.GenerateIdentifier(address.NetworkMain)
	if err != nil {
		return false
	}
	b, err := other.GenerateIdentifier(address.NetworkMain)
	if err != nil {
		return false
	}
	return a.Equal(b)
}
