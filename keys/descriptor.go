package keys

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"xdao.co/deid"
)

// Descriptor is the wire form of a key: an algorithm tag, the key material,
// and optional algorithm parameters carried opaquely.
//
// RSA keys carry PEM text in Data; Ed25519 and Dilithium3 keys carry
// standard base64 of their canonical bytes. Field order is lexicographic so
// the encoding of a descriptor is canonical.
type Descriptor struct {
	Algorithm string `json:"algorithm"`
	Data      string `json:"data"`
	Digest    string `json:"digest,omitempty"`
	Mode      string `json:"mode,omitempty"`
	Padding   string `json:"padding,omitempty"`
}

// ParseVerifyKey constructs a VerifyKey from its descriptor.
func ParseVerifyKey(d Descriptor) (VerifyKey, error) {
	switch d.Algorithm {
	case AlgorithmRSA, "SHA256withRSA", "RSA/ECB/PKCS1Padding":
		return ParseRSAVerifyKey(d.Data)
	case AlgorithmEd25519:
		raw, err := decodeBase64(d.Data)
		if err != nil {
			return nil, deid.WrapError(deid.KindFormat, "DEID-KEY-102", "invalid ed25519 key base64", err)
		}
		return NewEd25519VerifyKey(raw)
	case AlgorithmDilithium3:
		raw, err := decodeBase64(d.Data)
		if err != nil {
			return nil, deid.WrapError(deid.KindFormat, "DEID-KEY-103", "invalid dilithium3 key base64", err)
		}
		return NewDilithium3VerifyKey(raw)
	default:
		return nil, deid.NewError(deid.KindFormat, "DEID-KEY-101",
			fmt.Sprintf("unsupported key algorithm %q", d.Algorithm))
	}
}

// ParseSignKey constructs a SignKey from its descriptor.
func ParseSignKey(d Descriptor) (SignKey, error) {
	switch d.Algorithm {
	case AlgorithmRSA, "SHA256withRSA", "RSA/ECB/PKCS1Padding":
		return ParseRSASignKey(d.Data)
	case AlgorithmEd25519:
		raw, err := decodeBase64(d.Data)
		if err != nil {
			return nil, deid.WrapError(deid.KindFormat, "DEID-KEY-102", "invalid ed25519 key base64", err)
		}
		return NewEd25519SignKey(raw)
	case AlgorithmDilithium3:
		raw, err := decodeBase64(d.Data)
		if err != nil {
			return nil, deid.WrapError(deid.KindFormat, "DEID-KEY-103", "invalid dilithium3 key base64", err)
		}
		return NewDilithium3SignKey(raw)
	default:
		return nil, deid.NewError(deid.KindFormat, "DEID-KEY-101",
			fmt.Sprintf("unsupported key algorithm %q", d.Algorithm))
	}
}

// Describe returns the wire descriptor for a verify key.
func Describe(k VerifyKey) Descriptor {
	switch k.Algorithm() {
	case AlgorithmRSA:
		return Descriptor{
			Algorithm: AlgorithmRSA,
			Data:      encodePublicKeyPEM(k.Bytes()),
			Digest:    "SHA256",
			Mode:      "ECB",
			Padding:   "PKCS1",
		}
	default:
		return Descriptor{
			Algorithm: k.Algorithm(),
			Data:      base64.StdEncoding.EncodeToString(k.Bytes()),
		}
	}
}

// UnmarshalDescriptor parses a descriptor from JSON.
func UnmarshalDescriptor(data []byte) (Descriptor, error) {
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return Descriptor{}, deid.WrapError(deid.KindFormat, "DEID-KEY-100", "malformed key descriptor", err)
	}
	return d, nil
}

func decodeBase64(s string) ([]byte, error) {
	// Prefer standard padded encoding, but accept raw encoding too.
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}
