// Package meta implements the version-dispatched binding between a public
// key and an identifier.
//
// A meta is created once by the key owner and never mutated. Seed-based
// versions bind a chosen name to the key by signing it; keyless versions
// derive everything from the serialized key alone. The match engine
// re-derives addresses from a meta and compares them byte-for-byte against a
// claimed identifier, which is the entire trust model: no registry, no
// remote calls, just structural equality.
package meta

import (
	"bytes"
	"fmt"

	"xdao.co/deid"
	"xdao.co/deid/address"
	"xdao.co/deid/identifier"
	"xdao.co/deid/keys"
)

// Version tags a meta's derivation rule. Each version is a closed variant:
// new versions add a case and never modify existing ones.
//
// Bit 0x01 means the meta carries a seed as the identifier name.
type Version byte

const (
	// VersionMKM signs the seed to produce the fingerprint and derives the
	// address from that fingerprint.
	VersionMKM Version = 0x01
	// VersionBTC derives a BitCoin-style address directly from the
	// serialized public key; no seed, no username.
	VersionBTC Version = 0x02
	// VersionExBTC binds a username to a BitCoin-style address. Reserved:
	// the byte layout has no reference vectors yet.
	VersionExBTC Version = 0x03
	// VersionETH derives an Ethereum-style address. Reserved.
	VersionETH Version = 0x04
	// VersionExETH binds a username to an Ethereum-style address. Reserved.
	VersionExETH Version = 0x05

	// DefaultVersion is the version used when none is specified.
	DefaultVersion = VersionMKM
)

// HasSeed reports whether the version carries a seed as the identifier name.
func (v Version) HasSeed() bool { return v&VersionMKM == VersionMKM }

func checkVersion(v Version) error {
	switch v {
	case VersionMKM, VersionBTC:
		return nil
	case VersionExBTC, VersionETH, VersionExETH:
		return deid.NewError(deid.KindVersion, "DEID-META-102",
			fmt.Sprintf("reserved meta version 0x%02x", byte(v)))
	default:
		return deid.NewError(deid.KindVersion, "DEID-META-101",
			fmt.Sprintf("unknown meta version 0x%02x", byte(v)))
	}
}

// Meta is the immutable binding data produced by a key owner.
type Meta struct {
	version     Version
	seed        string
	key         keys.VerifyKey
	fingerprint []byte
}

// Generate creates a meta for the given sign key.
//
// Seed-based versions require a seed satisfying the identifier name grammar
// and sign its UTF-8 bytes; keyless versions require an empty seed and take
// the serialized public key as fingerprint.
func Generate(sk keys.SignKey, seed string, version Version) (Meta, error) {
	if err := checkVersion(version); err != nil {
		return Meta{}, err
	}
	pub := sk.PublicKey()
	if version.HasSeed() {
		if err := identifier.CheckName(seed); err != nil {
			return Meta{}, err
		}
		fingerprint, err := sk.Sign([]byte(seed))
		if err != nil {
			return Meta{}, err
		}
		return Meta{version: version, seed: seed, key: pub, fingerprint: fingerprint}, nil
	}
	if seed != "" {
		return Meta{}, deid.NewError(deid.KindFormat, "DEID-META-103",
			fmt.Sprintf("meta version 0x%02x takes no seed", byte(version)))
	}
	return Meta{version: version, key: pub, fingerprint: pub.Bytes()}, nil
}

// New assembles a meta from its parts and verifies the binding, which is the
// only place signature verification happens. Every later comparison in the
// pipeline is plain byte equality.
func New(version Version, seed string, key keys.VerifyKey, fingerprint []byte) (Meta, error) {
	if err := checkVersion(version); err != nil {
		return Meta{}, err
	}
	if key == nil {
		return Meta{}, deid.NewError(deid.KindFormat, "DEID-META-104", "meta requires a public key")
	}
	if version.HasSeed() {
		if err := identifier.CheckName(seed); err != nil {
			return Meta{}, err
		}
		if !key.Verify([]byte(seed), fingerprint) {
			return Meta{}, deid.NewError(deid.KindVerification, "DEID-META-201",
				"fingerprint is not a valid signature over the seed")
		}
		return Meta{version: version, seed: seed, key: key, fingerprint: append([]byte(nil), fingerprint...)}, nil
	}
	if seed != "" {
		return Meta{}, deid.NewError(deid.KindFormat, "DEID-META-103",
			fmt.Sprintf("meta version 0x%02x takes no seed", byte(version)))
	}
	serialized := key.Bytes()
	if len(fingerprint) == 0 {
		fingerprint = serialized
	} else if !bytes.Equal(fingerprint, serialized) {
		return Meta{}, deid.NewError(deid.KindVerification, "DEID-META-202",
			"fingerprint does not match the serialized public key")
	}
	return Meta{version: version, key: key, fingerprint: append([]byte(nil), fingerprint...)}, nil
}

// Version returns the meta version tag.
func (m Meta) Version() Version { return m.version }

// Seed returns the seed ("" for keyless versions).
func (m Meta) Seed() string { return m.seed }

// Key returns the owner's verify key.
func (m Meta) Key() keys.VerifyKey { return m.key }

// Fingerprint returns a copy of the fingerprint bytes.
func (m Meta) Fingerprint() []byte { return append([]byte(nil), m.fingerprint...) }

// IsZero reports whether m was never generated or assembled.
func (m Meta) IsZero() bool { return m.key == nil }

// MatchKey reports whether candidate is the key this meta binds. For
// seed-based versions the fingerprint must verify as candidate's signature
// over the seed; for keyless versions the serialized key bytes must be
// identical.
func (m Meta) MatchKey(candidate keys.VerifyKey) bool {
	if m.IsZero() || candidate == nil {
		return false
	}
	if keys.Equal(m.key, candidate) {
		return true
	}
	if m.version.HasSeed() {
		return candidate.Verify([]byte(m.seed), m.fingerprint)
	}
	return bytes.Equal(m.fingerprint, candidate.Bytes())
}

// derivationInput selects the address derivation input bytes per the version
// rule.
func (m Meta) derivationInput() ([]byte, error) {
	switch m.version {
	case VersionMKM:
		return m.fingerprint, nil
	case VersionBTC:
		return m.key.Bytes(), nil
	default:
		return nil, checkVersion(m.version)
	}
}

// GenerateAddress derives the address this meta produces for a network type.
func (m Meta) GenerateAddress(network address.NetworkType) (address.Address, error) {
	if m.IsZero() {
		return address.Address{}, deid.NewError(deid.KindInternal, "DEID-META-001", "zero meta")
	}
	input, err := m.derivationInput()
	if err != nil {
		return address.Address{}, err
	}
	return address.Derive(input, network), nil
}
