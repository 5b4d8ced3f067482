package keys

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestKeyStoreInitAndSign(t *testing.T) {
	ks, err := OpenKeyStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenKeyStore: %v", err)
	}

	seed := bytes.Repeat([]byte{0x2A}, 32)
	pubKey, path, err := ks.InitializeRootKey("alice", seed, false)
	if err != nil {
		t.Fatalf("InitializeRootKey: %v", err)
	}
	if !strings.HasPrefix(pubKey, "ed25519:") {
		t.Fatalf("public key string: got %q", pubKey)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat key file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("key file mode: got %o want 600", perm)
	}

	// Same seed on disk yields the same sign key.
	sk, err := ks.SignKey("alice", "")
	if err != nil {
		t.Fatalf("SignKey: %v", err)
	}
	direct, err := NewEd25519SignKey(seed)
	if err != nil {
		t.Fatalf("NewEd25519SignKey: %v", err)
	}
	if !Equal(sk.PublicKey(), direct.PublicKey()) {
		t.Fatalf("stored key differs from seed key")
	}

	// Re-init without force must fail.
	if _, _, err := ks.InitializeRootKey("alice", seed, false); err == nil {
		t.Fatalf("InitializeRootKey must refuse to overwrite")
	}
	if _, _, err := ks.InitializeRootKey("alice", seed, true); err != nil {
		t.Fatalf("InitializeRootKey(force): %v", err)
	}
}

func TestKeyStoreDeriveRole(t *testing.T) {
	ks, err := OpenKeyStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenKeyStore: %v", err)
	}
	seed := bytes.Repeat([]byte{0x07}, 32)
	if _, _, err := ks.InitializeRootKey("bob", seed, false); err != nil {
		t.Fatalf("InitializeRootKey: %v", err)
	}

	rolePub, rolePath, err := ks.DeriveRoleKey("bob", "station", false)
	if err != nil {
		t.Fatalf("DeriveRoleKey: %v", err)
	}
	if filepath.Base(rolePath) != "station.key" {
		t.Fatalf("role path: got %s", rolePath)
	}

	// Role derivation is deterministic: recompute from the root seed.
	roleSeed, err := DeriveRoleSeed(seed, "station")
	if err != nil {
		t.Fatalf("DeriveRoleSeed: %v", err)
	}
	want, err := NewEd25519SignKey(roleSeed)
	if err != nil {
		t.Fatalf("NewEd25519SignKey: %v", err)
	}
	sk, err := ks.SignKey("bob", "station")
	if err != nil {
		t.Fatalf("SignKey(role): %v", err)
	}
	if !Equal(sk.PublicKey(), want.PublicKey()) {
		t.Fatalf("role key differs from deterministic derivation")
	}
	wantPub, err := PublicKeyString(want.PublicKey().Bytes())
	if err != nil {
		t.Fatalf("PublicKeyString: %v", err)
	}
	if rolePub != wantPub {
		t.Fatalf("role public key string mismatch")
	}

	// Different roles yield different keys.
	other, err := DeriveRoleSeed(seed, "robot")
	if err != nil {
		t.Fatalf("DeriveRoleSeed(robot): %v", err)
	}
	if bytes.Equal(roleSeed, other) {
		t.Fatalf("role seeds must differ per role")
	}
}

func TestKeyStoreList(t *testing.T) {
	ks, err := OpenKeyStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenKeyStore: %v", err)
	}

	entries, err := ks.ListKeys()
	if err != nil {
		t.Fatalf("ListKeys(empty): %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}

	seed := bytes.Repeat([]byte{0x01}, 32)
	for _, name := range []string{"zeta", "alpha"} {
		if _, _, err := ks.InitializeRootKey(name, seed, false); err != nil {
			t.Fatalf("InitializeRootKey(%s): %v", name, err)
		}
	}
	if _, _, err := ks.DeriveRoleKey("alpha", "station", false); err != nil {
		t.Fatalf("DeriveRoleKey: %v", err)
	}

	entries, err = ks.ListKeys()
	if err != nil {
		t.Fatalf("ListKeys: %v", err)
	}
	if len(entries) != 2 || entries[0].Name != "alpha" || entries[1].Name != "zeta" {
		t.Fatalf("entries not sorted by name: %+v", entries)
	}
	if len(entries[0].Roles) != 1 || entries[0].Roles[0] != "station" {
		t.Fatalf("alpha roles: %+v", entries[0].Roles)
	}
}

func TestCheckLocalName(t *testing.T) {
	for _, name := range []string{"alice", "a-b_c", "X9"} {
		if err := CheckLocalName(name); err != nil {
			t.Fatalf("CheckLocalName(%q): %v", name, err)
		}
	}
	for _, name := range []string{"", "has space", "dot.ted", "slash/y"} {
		if err := CheckLocalName(name); err == nil {
			t.Fatalf("CheckLocalName(%q) accepted", name)
		}
	}
}

func TestParseSeedHex(t *testing.T) {
	seed := strings.Repeat("ab", 32)
	got, err := ParseSeedHex(seed)
	if err != nil {
		t.Fatalf("ParseSeedHex: %v", err)
	}
	if len(got) != 32 {
		t.Fatalf("seed length: got %d", len(got))
	}
	if _, err := ParseSeedHex("0x" + seed); err != nil {
		t.Fatalf("ParseSeedHex(0x prefix): %v", err)
	}
	if _, err := ParseSeedHex("abcd"); err == nil {
		t.Fatalf("short seed accepted")
	}
	if _, err := ParseSeedHex("zz" + seed[2:]); err == nil {
		t.Fatalf("non-hex seed accepted")
	}
}
