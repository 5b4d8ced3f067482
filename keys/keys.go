package keys

import "bytes"

// Algorithm tags carried in key descriptors.
const (
	AlgorithmRSA        = "RSA"
	AlgorithmEd25519    = "Ed25519"
	AlgorithmDilithium3 = "Dilithium3"
)

// VerifyKey is a public key: it checks signatures and serializes itself to
// canonical bytes.
//
// Bytes must be deterministic for a given key; keyless meta versions use the
// serialized form directly as address derivation input, so independent
// implementations must agree on it byte-for-byte.
type VerifyKey interface {
	// Algorithm returns the key's algorithm tag.
	Algorithm() string
	// Bytes returns the canonical serialized public key bytes.
	Bytes() []byte
	// Verify reports whether signature is valid for data under this key.
	Verify(data, signature []byte) bool
}

// SignKey is a private key. Each call is self-contained; implementations
// carry no session state between calls.
type SignKey interface {
	// Algorithm returns the key's algorithm tag.
	Algorithm() string
	// Sign returns a signature over data.
	Sign(data []byte) ([]byte, error)
	// PublicKey returns the matching verify key.
	PublicKey() VerifyKey
}

// Equal reports whether two verify keys are the same key: same algorithm tag
// and byte-identical canonical serialization.
func Equal(a, b VerifyKey) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Algorithm() != b.Algorithm() {
		return false
	}
	return bytes.Equal(a.Bytes(), b.Bytes())
}
