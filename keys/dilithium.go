package keys

import (
	"crypto/rand"

	"github.com/cloudflare/circl/sign/dilithium/mode3"

	"xdao.co/deid"
)

// Dilithium3VerifyKey wraps a Dilithium mode3 public key (post-quantum).
type Dilithium3VerifyKey struct {
	pub *mode3.PublicKey
}

// Dilithium3SignKey wraps a Dilithium mode3 private key.
type Dilithium3SignKey struct {
	priv *mode3.PrivateKey
	pub  *mode3.PublicKey
}

// NewDilithium3VerifyKey unpacks a packed mode3 public key.
func NewDilithium3VerifyKey(raw []byte) (*Dilithium3VerifyKey, error) {
	var pk mode3.PublicKey
	if err := pk.UnmarshalBinary(raw); err != nil {
		return nil, deid.WrapError(deid.KindFormat, "DEID-KEY-131", "invalid dilithium3 public key", err)
	}
	return &Dilithium3VerifyKey{pub: &pk}, nil
}

// NewDilithium3SignKey unpacks a packed mode3 private key.
func NewDilithium3SignKey(raw []byte) (*Dilithium3SignKey, error) {
	var sk mode3.PrivateKey
	if err := sk.UnmarshalBinary(raw); err != nil {
		return nil, deid.WrapError(deid.KindFormat, "DEID-KEY-132", "invalid dilithium3 private key", err)
	}
	pub := sk.Public().(*mode3.PublicKey)
	return &Dilithium3SignKey{priv: &sk, pub: pub}, nil
}

// GenerateDilithium3 returns a fresh mode3 sign key.
func GenerateDilithium3() (*Dilithium3SignKey, error) {
	pub, priv, err := mode3.GenerateKey(rand.Reader)
	if err != nil {
		return nil, deid.WrapError(deid.KindInternal, "DEID-KEY-304", "dilithium3 key generation failed", err)
	}
	return &Dilithium3SignKey{priv: priv, pub: pub}, nil
}

func (k *Dilithium3VerifyKey) Algorithm() string { return AlgorithmDilithium3 }

// Bytes returns the packed public key bytes.
func (k *Dilithium3VerifyKey) Bytes() []byte {
	b, err := k.pub.MarshalBinary()
	if err != nil {
		// Packing a valid mode3 key cannot fail.
		return nil
	}
	return b
}

func (k *Dilithium3VerifyKey) Verify(data, signature []byte) bool {
	if len(signature) != mode3.SignatureSize {
		return false
	}
	return mode3.Verify(k.pub, data, signature)
}

func (k *Dilithium3SignKey) Algorithm() string { return AlgorithmDilithium3 }

func (k *Dilithium3SignKey) Sign(data []byte) ([]byte, error) {
	sig := make([]byte, mode3.SignatureSize)
	mode3.SignTo(k.priv, data, sig)
	return sig, nil
}

func (k *Dilithium3SignKey) PublicKey() VerifyKey {
	return &Dilithium3VerifyKey{pub: k.pub}
}
