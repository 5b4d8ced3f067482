// Package identifier implements the canonical entity identifier text form:
//
//	name@address[/terminal]
//
// The name alphabet ([A-Za-z0-9_.-]) and the Base58 address alphabet are
// disjoint from '@' and '/', so the grammar parses unambiguously with two
// splits and no escaping.
package identifier

import (
	"fmt"
	"strings"

	"xdao.co/deid"
	"xdao.co/deid/address"
)

// Name length bounds in bytes, both inclusive.
const (
	MinNameLength = 2
	MaxNameLength = 31
)

// Identifier is a composed value naming an entity. The terminal part is a
// login-point hint: carried verbatim, never validated, and ignored by
// equality.
type Identifier struct {
	name     string
	addr     address.Address
	terminal string
	text     string
}

// CheckName validates the identifier name grammar: 2..31 bytes of
// [A-Za-z0-9_.-].
func CheckName(name string) error {
	if len(name) < MinNameLength || len(name) > MaxNameLength {
		return deid.NewError(deid.KindFormat, "DEID-NAME-101",
			fmt.Sprintf("name must be %d..%d bytes, got %d", MinNameLength, MaxNameLength, len(name)))
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '.' || c == '-':
		default:
			return deid.NewError(deid.KindFormat, "DEID-NAME-102",
				fmt.Sprintf("invalid character %q in name", c))
		}
	}
	return nil
}

// Parse parses an identifier from its text form.
//
// The optional terminal is everything after the first '/', taken verbatim.
// The remainder splits at the first '@' into name and address text; the name
// must satisfy the grammar and the address must decode. Text without '@' is
// accepted only when it is itself a decodable address (the nameless form
// keyless metas produce) or a broadcast address.
func Parse(text string) (Identifier, error) {
	head := text
	terminal := ""
	if i := strings.IndexByte(text, '/'); i >= 0 {
		head = text[:i]
		terminal = text[i+1:]
	}

	name := ""
	addrText := head
	if i := strings.IndexByte(head, '@'); i >= 0 {
		name = head[:i]
		addrText = head[i+1:]
		if err := CheckName(name); err != nil {
			return Identifier{}, err
		}
	}

	addr, err := address.Decode(addrText)
	if err != nil {
		if name == "" && !strings.ContainsAny(head, "@") {
			return Identifier{}, deid.WrapError(deid.KindFormat, "DEID-ID-101",
				"identifier must contain '@' or be a bare address", err)
		}
		return Identifier{}, err
	}
	return Identifier{name: name, addr: addr, terminal: terminal, text: text}, nil
}

// Compose builds an identifier from its parts. An empty name yields the bare
// address form; a non-empty name must satisfy the grammar. The terminal may
// be empty.
func Compose(name string, addr address.Address, terminal string) (Identifier, error) {
	if addr.IsZero() {
		return Identifier{}, deid.NewError(deid.KindInternal, "DEID-ID-001", "compose with zero address")
	}
	if name != "" {
		if err := CheckName(name); err != nil {
			return Identifier{}, err
		}
	}
	var b strings.Builder
	if name != "" {
		b.WriteString(name)
		b.WriteByte('@')
	}
	b.WriteString(addr.String())
	if terminal != "" {
		b.WriteByte('/')
		b.WriteString(terminal)
	}
	return Identifier{name: name, addr: addr, terminal: terminal, text: b.String()}, nil
}

// Name returns the entity name ("" for nameless identifiers).
func (id Identifier) Name() string { return id.name }

// Address returns the identifier's address.
func (id Identifier) Address() address.Address { return id.addr }

// Terminal returns the login-point hint ("" when absent).
func (id Identifier) Terminal() string { return id.terminal }

// String returns the canonical text form.
func (id Identifier) String() string { return id.text }

// Type returns the network type of the underlying address.
func (id Identifier) Type() address.NetworkType { return id.addr.Network() }

// Number returns the search number of the underlying address.
func (id Identifier) Number() uint32 { return id.addr.Number() }

// IsZero reports whether the identifier was never parsed or composed.
func (id Identifier) IsZero() bool { return id.addr.IsZero() }

// Valid reports whether the underlying address carries a usable search
// number.
func (id Identifier) Valid() bool { return id.addr.Valid() }

// IsBroadcast reports whether the identifier points at a broadcast address.
func (id Identifier) IsBroadcast() bool { return id.addr.IsBroadcast() }

// Equal compares name and address; the terminal is a routing hint and does
// not take part in identity.
func (id Identifier) Equal(other Identifier) bool {
	return id.name == other.name && id.addr.Equal(other.addr)
}
