package identifier

import (
	"strings"
	"testing"

	"xdao.co/deid"
	"xdao.co/deid/address"
)

func testAddress(t *testing.T, input string, network address.NetworkType) address.Address {
	t.Helper()
	return address.Derive([]byte(input), network)
}

func TestCheckNameBounds(t *testing.T) {
	valid := []string{"ab", "hulk", "a.b-c_d", "Moki99", strings.Repeat("x", 31)}
	for _, name := range valid {
		if err := CheckName(name); err != nil {
			t.Fatalf("CheckName(%q): %v", name, err)
		}
	}

	invalid := []string{"", "a", strings.Repeat("x", 32), "has space", "at@sign", "sla/sh", "ünïcode"}
	for _, name := range invalid {
		err := CheckName(name)
		if !deid.IsKind(err, deid.KindFormat) {
			t.Fatalf("CheckName(%q): got err=%v want KindFormat", name, err)
		}
	}
}

func TestParseComposeRoundTrip(t *testing.T) {
	addr := testAddress(t, "round trip", address.NetworkMain)

	cases := []struct {
		name     string
		terminal string
	}{
		{"alice", ""},
		{"alice", "home"},
		{"", ""},
		{"", "iphone"},
	}
	for _, c := range cases {
		id, err := Compose(c.name, addr, c.terminal)
		if err != nil {
			t.Fatalf("Compose(%q, _, %q): %v", c.name, c.terminal, err)
		}
		parsed, err := Parse(id.String())
		if err != nil {
			t.Fatalf("Parse(%s): %v", id, err)
		}
		if !parsed.Equal(id) {
			t.Fatalf("round trip mismatch: %s vs %s", parsed, id)
		}
		if parsed.Name() != c.name || parsed.Terminal() != c.terminal {
			t.Fatalf("parts mismatch for %s", id)
		}
		if !parsed.Address().Equal(addr) {
			t.Fatalf("address mismatch for %s", id)
		}
	}
}

func TestParseTerminalVerbatim(t *testing.T) {
	addr := testAddress(t, "terminal", address.NetworkMain)

	// Everything after the first '/' is the terminal, including further
	// slashes and '@'.
	text := "bob@" + addr.String() + "/dev/ice@2"
	id, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if id.Terminal() != "dev/ice@2" {
		t.Fatalf("terminal: got %q", id.Terminal())
	}
	if id.Name() != "bob" {
		t.Fatalf("name: got %q", id.Name())
	}
}

func TestParseRejectsBadNames(t *testing.T) {
	addr := testAddress(t, "bad names", address.NetworkMain)

	for _, name := range []string{"a", strings.Repeat("x", 32), "bad name"} {
		_, err := Parse(name + "@" + addr.String())
		if !deid.IsKind(err, deid.KindFormat) {
			t.Fatalf("Parse(%q@...): got err=%v want KindFormat", name, err)
		}
	}
}

func TestParseBareAddress(t *testing.T) {
	addr := testAddress(t, "bare", address.NetworkBTCMain)

	id, err := Parse(addr.String())
	if err != nil {
		t.Fatalf("Parse(bare address): %v", err)
	}
	if id.Name() != "" {
		t.Fatalf("bare identifier must be nameless")
	}
	if !id.Address().Equal(addr) {
		t.Fatalf("address mismatch")
	}

	_, err = Parse("definitely-not-an-address")
	if !deid.IsKind(err, deid.KindFormat) {
		t.Fatalf("Parse(garbage): got err=%v want KindFormat", err)
	}
	if deid.RuleID(err) != "DEID-ID-101" {
		t.Fatalf("rule: got %s want DEID-ID-101", deid.RuleID(err))
	}
}

func TestParseBroadcast(t *testing.T) {
	id, err := Parse("anywhere")
	if err != nil {
		t.Fatalf("Parse(anywhere): %v", err)
	}
	if !id.IsBroadcast() {
		t.Fatalf("anywhere must be broadcast")
	}
	if id.Number() != 9527 {
		t.Fatalf("broadcast number: got %d", id.Number())
	}

	named, err := Parse("all@everywhere")
	if err != nil {
		t.Fatalf("Parse(all@everywhere): %v", err)
	}
	if !named.IsBroadcast() || named.Name() != "all" {
		t.Fatalf("named broadcast parsed wrong: %s", named)
	}
	if !named.Type().IsGroup() {
		t.Fatalf("everywhere must be a group type")
	}
}

func TestComposeZeroAddress(t *testing.T) {
	var zero address.Address
	_, err := Compose("alice", zero, "")
	if !deid.IsKind(err, deid.KindInternal) {
		t.Fatalf("Compose(zero address): got err=%v want KindInternal", err)
	}
}

func TestEqualIgnoresTerminal(t *testing.T) {
	addr := testAddress(t, "equality", address.NetworkMain)

	a, err := Compose("carol", addr, "desktop")
	if err != nil {
		t.Fatalf("Compose(a): %v", err)
	}
	b, err := Compose("carol", addr, "phone")
	if err != nil {
		t.Fatalf("Compose(b): %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("terminal must not take part in equality")
	}

	c, err := Compose("caro1", addr, "")
	if err != nil {
		t.Fatalf("Compose(c): %v", err)
	}
	if a.Equal(c) {
		t.Fatalf("different names must not be equal")
	}
}
