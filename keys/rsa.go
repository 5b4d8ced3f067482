package keys

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"strings"

	"xdao.co/deid"
)

// DefaultRSABits is the modulus size used when generating RSA keys without
// an explicit size.
const DefaultRSABits = 1024

// RSAVerifyKey verifies PKCS#1 v1.5 signatures over SHA-256 digests.
type RSAVerifyKey struct {
	pub *rsa.PublicKey
}

// RSASignKey produces PKCS#1 v1.5 signatures over SHA-256 digests. Signing
// is deterministic for a given key and message.
type RSASignKey struct {
	priv *rsa.PrivateKey
}

func (k *RSAVerifyKey) Algorithm() string { return AlgorithmRSA }

// Bytes returns the PKCS#1 DER encoding of the public key (modulus and
// exponent only, no algorithm wrapper).
func (k *RSAVerifyKey) Bytes() []byte {
	return x509.MarshalPKCS1PublicKey(k.pub)
}

func (k *RSAVerifyKey) Verify(data, signature []byte) bool {
	digest := sha256.Sum256(data)
	return rsa.VerifyPKCS1v15(k.pub, crypto.SHA256, digest[:], signature) == nil
}

func (k *RSASignKey) Algorithm() string { return AlgorithmRSA }

func (k *RSASignKey) Sign(data []byte) ([]byte, error) {
	digest := sha256.Sum256(data)
	sig, err := rsa.SignPKCS1v15(nil, k.priv, crypto.SHA256, digest[:])
	if err != nil {
		return nil, deid.WrapError(deid.KindInternal, "DEID-KEY-301", "rsa signing failed", err)
	}
	return sig, nil
}

func (k *RSASignKey) PublicKey() VerifyKey {
	return &RSAVerifyKey{pub: &k.priv.PublicKey}
}

// GenerateRSA returns a fresh RSA sign key. bits <= 0 selects
// DefaultRSABits.
func GenerateRSA(bits int) (*RSASignKey, error) {
	if bits <= 0 {
		bits = DefaultRSABits
	}
	priv, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, deid.WrapError(deid.KindInternal, "DEID-KEY-302", "rsa key generation failed", err)
	}
	return &RSASignKey{priv: priv}, nil
}

// ParseRSAVerifyKey parses a public key from PEM text. Both SubjectPublicKeyInfo
// and bare PKCS#1 bodies are accepted, under any of the common labels, and
// the armor may be collapsed onto a single line (descriptors transported as
// JSON strings often are).
func ParseRSAVerifyKey(pemText string) (*RSAVerifyKey, error) {
	der, err := pemBody(pemText)
	if err != nil {
		return nil, err
	}
	if pub, perr := x509.ParsePKCS1PublicKey(der); perr == nil {
		return &RSAVerifyKey{pub: pub}, nil
	}
	parsed, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, deid.WrapError(deid.KindFormat, "DEID-KEY-111", "unparseable rsa public key", err)
	}
	pub, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, deid.NewError(deid.KindFormat, "DEID-KEY-112", "public key is not rsa")
	}
	return &RSAVerifyKey{pub: pub}, nil
}

// ParseRSASignKey parses a private key from PEM text (PKCS#1 or PKCS#8).
func ParseRSASignKey(pemText string) (*RSASignKey, error) {
	der, err := pemBody(pemText)
	if err != nil {
		return nil, err
	}
	if priv, perr := x509.ParsePKCS1PrivateKey(der); perr == nil {
		return &RSASignKey{priv: priv}, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, deid.WrapError(deid.KindFormat, "DEID-KEY-113", "unparseable rsa private key", err)
	}
	priv, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, deid.NewError(deid.KindFormat, "DEID-KEY-114", "private key is not rsa")
	}
	return &RSASignKey{priv: priv}, nil
}

// PrivatePEM returns the PKCS#1 PEM encoding of the private key, for the
// local key store.
func (k *RSASignKey) PrivatePEM() string {
	block := &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(k.priv)}
	return string(pem.EncodeToMemory(block))
}

func encodePublicKeyPEM(pkcs1DER []byte) string {
	block := &pem.Block{Type: "RSA PUBLIC KEY", Bytes: pkcs1DER}
	return string(pem.EncodeToMemory(block))
}

// pemBody extracts the DER bytes between the first BEGIN/END armor lines.
// It tolerates armor without newlines: the base64 payload is whatever sits
// between the header and footer, with all whitespace stripped.
func pemBody(text string) ([]byte, error) {
	if block, _ := pem.Decode([]byte(text)); block != nil {
		return block.Bytes, nil
	}
	start := strings.Index(text, "-----BEGIN ")
	if start < 0 {
		return nil, deid.NewError(deid.KindFormat, "DEID-KEY-110", "missing PEM armor")
	}
	rest := text[start:]
	headEnd := strings.Index(rest[len("-----BEGIN "):], "-----")
	if headEnd < 0 {
		return nil, deid.NewError(deid.KindFormat, "DEID-KEY-110", "missing PEM armor")
	}
	body := rest[len("-----BEGIN ")+headEnd+len("-----"):]
	footer := strings.Index(body, "-----END ")
	if footer < 0 {
		return nil, deid.NewError(deid.KindFormat, "DEID-KEY-110", "missing PEM armor")
	}
	payload := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, body[:footer])
	der, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, deid.WrapError(deid.KindFormat, "DEID-KEY-110", "invalid PEM base64", err)
	}
	return der, nil
}
