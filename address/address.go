// Package address implements the 25-byte entity address and its Base58 text
// codec.
//
// Layout: network(1) || ripemd160(sha256(input))(20) || checkCode(4), where
// the check code is the first four bytes of sha256(sha256(network||digest)).
// The text form is the Base58 encoding of the 25 raw bytes. Derivation is
// deterministic and pure: the same input bytes and network type always yield
// the same address.
package address

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ripemd160"

	"xdao.co/deid"
)

const (
	// DigestLength is the RIPEMD-160 digest length.
	DigestLength = 20
	// CheckCodeLength is the truncated double-SHA256 check code length.
	CheckCodeLength = 4
	// RawLength is the full raw address length.
	RawLength = 1 + DigestLength + CheckCodeLength
)

// Address is a derived value, never constructed field-by-field: it comes out
// of Derive or Decode and is immutable afterwards.
type Address struct {
	network NetworkType
	digest  [DigestLength]byte
	code    [CheckCodeLength]byte
	text    string

	broadcast bool
}

// Derive computes the address for the given derivation input bytes and
// network type.
func Derive(input []byte, network NetworkType) Address {
	digest := hash160(input)
	payload := make([]byte, 1+DigestLength)
	payload[0] = byte(network)
	copy(payload[1:], digest)
	code := checkCode(payload)

	raw := make([]byte, 0, RawLength)
	raw = append(raw, payload...)
	raw = append(raw, code...)

	a := Address{network: network, text: base58.Encode(raw)}
	copy(a.digest[:], digest)
	copy(a.code[:], code)
	return a
}

// Decode parses an address from its text form.
//
// Broadcast addresses are matched first; everything else must be well-formed
// Base58 of exactly 25 bytes whose trailing check code agrees with a
// recomputation over the leading 21 bytes.
func Decode(text string) (Address, error) {
	if b, ok := broadcastByText(text); ok {
		return b, nil
	}
	raw, err := base58.Decode(text)
	if err != nil {
		return Address{}, deid.WrapError(deid.KindFormat, "DEID-ADDR-101", "address is not well-formed base58", err)
	}
	if len(raw) != RawLength {
		return Address{}, deid.NewError(deid.KindFormat, "DEID-ADDR-102",
			fmt.Sprintf("address must decode to %d bytes, got %d", RawLength, len(raw)))
	}
	if !bytes.Equal(checkCode(raw[:1+DigestLength]), raw[1+DigestLength:]) {
		return Address{}, deid.NewError(deid.KindChecksum, "DEID-ADDR-201", "address check code mismatch")
	}
	a := Address{network: NetworkType(raw[0]), text: text}
	copy(a.digest[:], raw[1:1+DigestLength])
	copy(a.code[:], raw[1+DigestLength:])
	return a, nil
}

// Network returns the network type byte.
func (a Address) Network() NetworkType { return a.network }

// Digest returns the 20-byte RIPEMD-160 digest.
func (a Address) Digest() []byte {
	d := a.digest
	return d[:]
}

// CheckCode returns the 4-byte check code.
func (a Address) CheckCode() []byte {
	c := a.code
	return c[:]
}

// Bytes returns the 25 raw address bytes. Broadcast addresses have no raw
// form and return nil.
func (a Address) Bytes() []byte {
	if a.broadcast {
		return nil
	}
	raw := make([]byte, 0, RawLength)
	raw = append(raw, byte(a.network))
	raw = append(raw, a.digest[:]...)
	raw = append(raw, a.code[:]...)
	return raw
}

// String returns the address text form.
func (a Address) String() string { return a.text }

// IsZero reports whether a is the zero Address (neither derived nor decoded).
func (a Address) IsZero() bool { return a.text == "" }

// IsBroadcast reports whether a is one of the constant broadcast addresses.
func (a Address) IsBroadcast() bool { return a.broadcast }

// Equal reports whether two addresses are byte-identical over the 25-byte
// form (or the same broadcast constant).
func (a Address) Equal(other Address) bool {
	if a.broadcast || other.broadcast {
		return a.broadcast == other.broadcast && strings.EqualFold(a.text, other.text)
	}
	return a.network == other.network && a.digest == other.digest && a.code == other.code
}

// hash160 is RIPEMD160(SHA256(data)).
func hash160(data []byte) []byte {
	first := sha256.Sum256(data)
	h := ripemd160.New()
	h.Write(first[:])
	return h.Sum(nil)
}

// checkCode is the first 4 bytes of SHA256(SHA256(payload)).
func checkCode(payload []byte) []byte {
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	return second[:CheckCodeLength]
}

// Number returns the search number: the check code read as an unsigned
// big-endian 32-bit integer. It is presentational only and never takes part
// in identity comparison. A result of 0 marks a degenerate address; see
// Valid.
func (a Address) Number() uint32 {
	if a.broadcast {
		return broadcastNumber
	}
	return binary.BigEndian.Uint32(a.code[:])
}

// Valid reports whether the address carries a usable search number. A zero
// check code has no number in (0, 2^32); callers that need one regenerate
// the meta with a different seed or network type.
func (a Address) Valid() bool {
	return !a.IsZero() && a.Number() > 0
}
