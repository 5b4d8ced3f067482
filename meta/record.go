package meta

import (
	"bytes"
	"encoding/base64"
	"encoding/json"

	"xdao.co/deid"
	"xdao.co/deid/cidutil"
	"xdao.co/deid/keys"
)

// Record is the wire form of a meta: a key-value document suitable for
// transmission or storage. Consumers dispatch on Version to know how to
// interpret Fingerprint and whether Seed is present.
//
// Field order is lexicographic and encoding/json emits struct fields in
// declaration order, so marshaling a Record yields the canonical bytes the
// record CID is computed over.
type Record struct {
	Fingerprint string          `json:"fingerprint,omitempty"`
	Key         keys.Descriptor `json:"key"`
	Seed        string          `json:"seed,omitempty"`
	Version     int             `json:"version"`
}

// Record returns the wire form of the meta. Keyless metas omit seed and
// fingerprint; their fingerprint is recomputed from the key on parse.
func (m Meta) Record() Record {
	r := Record{
		Key:     keys.Describe(m.key),
		Version: int(m.version),
	}
	if m.version.HasSeed() {
		r.Seed = m.seed
		r.Fingerprint = base64.StdEncoding.EncodeToString(m.fingerprint)
	}
	return r
}

// CanonicalBytes returns the canonical record encoding: compact JSON with
// lexicographically ordered keys.
func (m Meta) CanonicalBytes() ([]byte, error) {
	b, err := json.Marshal(m.Record())
	if err != nil {
		return nil, deid.WrapError(deid.KindInternal, "DEID-META-002", "record encoding failed", err)
	}
	return b, nil
}

// CID returns the CIDv1 (raw, sha2-256) of the canonical record bytes.
func (m Meta) CID() (string, error) {
	b, err := m.CanonicalBytes()
	if err != nil {
		return "", err
	}
	return cidutil.RecordCID(b), nil
}

// ParseRecord decodes a meta record and verifies the binding it claims,
// exactly as New does. Field order in the input is not significant; use
// Canonicalize to obtain the canonical bytes.
func ParseRecord(data []byte) (Meta, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Meta{}, deid.WrapError(deid.KindFormat, "DEID-REC-101", "malformed meta record", err)
	}
	return FromRecord(r)
}

// FromRecord assembles and verifies a meta from its wire form.
func FromRecord(r Record) (Meta, error) {
	if r.Version < 0 || r.Version > 0xFF {
		return Meta{}, deid.NewError(deid.KindVersion, "DEID-REC-102", "meta version out of range")
	}
	key, err := keys.ParseVerifyKey(r.Key)
	if err != nil {
		return Meta{}, err
	}
	var fingerprint []byte
	if r.Fingerprint != "" {
		fingerprint, err = base64.StdEncoding.DecodeString(r.Fingerprint)
		if err != nil {
			return Meta{}, deid.WrapError(deid.KindFormat, "DEID-REC-103", "invalid fingerprint base64", err)
		}
	}
	return New(Version(r.Version), r.Seed, key, fingerprint)
}

// Canonicalize parses a meta record and re-renders its canonical bytes. The
// input must be a verifiable record; canonicalization is idempotent.
func Canonicalize(data []byte) ([]byte, error) {
	m, err := ParseRecord(data)
	if err != nil {
		return nil, err
	}
	return m.CanonicalBytes()
}

// IsCanonical reports whether data already is the canonical encoding of the
// record it contains.
func IsCanonical(data []byte) bool {
	canon, err := Canonicalize(data)
	if err != nil {
		return false
	}
	return bytes.Equal(canon, data)
}
