package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"xdao.co/deid"
)

// Ed25519VerifyKey wraps a raw 32-byte Ed25519 public key.
type Ed25519VerifyKey struct {
	pub ed25519.PublicKey
}

// Ed25519SignKey wraps an Ed25519 private key. Signatures are over the raw
// message; Ed25519 hashes internally.
type Ed25519SignKey struct {
	priv ed25519.PrivateKey
}

// NewEd25519VerifyKey wraps raw public key bytes.
func NewEd25519VerifyKey(raw []byte) (*Ed25519VerifyKey, error) {
	if len(raw) != ed25519.PublicKeySize {
		return nil, deid.NewError(deid.KindFormat, "DEID-KEY-121",
			fmt.Sprintf("ed25519 public key must be %d bytes, got %d", ed25519.PublicKeySize, len(raw)))
	}
	return &Ed25519VerifyKey{pub: ed25519.PublicKey(append([]byte(nil), raw...))}, nil
}

// NewEd25519SignKey wraps raw key material: either a 32-byte seed or a
// 64-byte expanded private key.
func NewEd25519SignKey(raw []byte) (*Ed25519SignKey, error) {
	switch len(raw) {
	case ed25519.SeedSize:
		return &Ed25519SignKey{priv: ed25519.NewKeyFromSeed(raw)}, nil
	case ed25519.PrivateKeySize:
		return &Ed25519SignKey{priv: ed25519.PrivateKey(append([]byte(nil), raw...))}, nil
	}
	return nil, deid.NewError(deid.KindFormat, "DEID-KEY-122",
		fmt.Sprintf("ed25519 private key must be %d or %d bytes, got %d",
			ed25519.SeedSize, ed25519.PrivateKeySize, len(raw)))
}

// GenerateEd25519 returns a fresh Ed25519 sign key.
func GenerateEd25519() (*Ed25519SignKey, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, deid.WrapError(deid.KindInternal, "DEID-KEY-303", "ed25519 key generation failed", err)
	}
	return &Ed25519SignKey{priv: priv}, nil
}

func (k *Ed25519VerifyKey) Algorithm() string { return AlgorithmEd25519 }

// Bytes returns the raw 32 public key bytes.
func (k *Ed25519VerifyKey) Bytes() []byte {
	return append([]byte(nil), k.pub...)
}

func (k *Ed25519VerifyKey) Verify(data, signature []byte) bool {
	if len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(k.pub, data, signature)
}

func (k *Ed25519SignKey) Algorithm() string { return AlgorithmEd25519 }

func (k *Ed25519SignKey) Sign(data []byte) ([]byte, error) {
	return ed25519.Sign(k.priv, data), nil
}

func (k *Ed25519SignKey) PublicKey() VerifyKey {
	return &Ed25519VerifyKey{pub: k.priv.Public().(ed25519.PublicKey)}
}

// Seed returns the 32-byte seed of the private key.
func (k *Ed25519SignKey) Seed() []byte { return k.priv.Seed() }

// PublicKeyString encodes an Ed25519 public key as "ed25519:" + base64, the
// compact form the CLI and key store print.
func PublicKeyString(pub ed25519.PublicKey) (string, error) {
	if l := len(pub); l != ed25519.PublicKeySize {
		return "", fmt.Errorf("ed25519 public key must be %d bytes, got %d", ed25519.PublicKeySize, l)
	}
	return "ed25519:" + base64.StdEncoding.EncodeToString(pub), nil
}
