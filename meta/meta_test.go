package meta_test

import (
	"crypto/ed25519"
	"testing"

	"xdao.co/deid"
	"xdao.co/deid/address"
	"xdao.co/deid/keys"
	"xdao.co/deid/meta"
)

func testSignKey(t *testing.T, fill byte) keys.SignKey {
	t.Helper()
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = fill
	}
	sk, err := keys.NewEd25519SignKey(seed)
	if err != nil {
		t.Fatalf("NewEd25519SignKey: %v", err)
	}
	return sk
}

func TestGenerateSeeded(t *testing.T) {
	sk := testSignKey(t, 0x11)
	m, err := meta.Generate(sk, "alice", meta.VersionMKM)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if m.Seed() != "alice" {
		t.Fatalf("seed: got %q", m.Seed())
	}
	if !m.Key().Verify([]byte("alice"), m.Fingerprint()) {
		t.Fatalf("fingerprint is not a signature over the seed")
	}
	if !m.MatchKey(sk.PublicKey()) {
		t.Fatalf("MatchKey(own key) = false")
	}

	id, err := m.GenerateIdentifier(address.NetworkMain)
	if err != nil {
		t.Fatalf("GenerateIdentifier: %v", err)
	}
	if id.Name() != "alice" {
		t.Fatalf("identifier name: got %q", id.Name())
	}
	if !m.MatchIdentifier(id) {
		t.Fatalf("MatchIdentifier(own identifier) = false")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	sk := testSignKey(t, 0x22)
	m1, err := meta.Generate(sk, "bob", meta.VersionMKM)
	if err != nil {
		t.Fatalf("Generate(1): %v", err)
	}
	m2, err := meta.Generate(sk, "bob", meta.VersionMKM)
	if err != nil {
		t.Fatalf("Generate(2): %v", err)
	}
	if !m1.Equal(m2) {
		t.Fatalf("same key and seed must generate equal metas")
	}
	a1, err := m1.GenerateAddress(address.NetworkMain)
	if err != nil {
		t.Fatalf("GenerateAddress: %v", err)
	}
	a2, err := m2.GenerateAddress(address.NetworkMain)
	if err != nil {
		t.Fatalf("GenerateAddress: %v", err)
	}
	if !a1.Equal(a2) {
		t.Fatalf("address derivation not deterministic")
	}
}

func TestGenerateKeyless(t *testing.T) {
	sk := testSignKey(t, 0x33)
	m, err := meta.Generate(sk, "", meta.VersionBTC)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if m.Seed() != "" {
		t.Fatalf("keyless meta must have no seed")
	}

	id, err := m.GenerateIdentifier(address.NetworkBTCMain)
	if err != nil {
		t.Fatalf("GenerateIdentifier: %v", err)
	}
	if id.Name() != "" {
		t.Fatalf("keyless identifier must be nameless, got %q", id.Name())
	}
	if !m.MatchIdentifier(id) {
		t.Fatalf("MatchIdentifier(own identifier) = false")
	}

	if _, err := meta.Generate(sk, "bob", meta.VersionBTC); err == nil {
		t.Fatalf("keyless version must reject a seed")
	}
}

func TestGenerateVersionErrors(t *testing.T) {
	sk := testSignKey(t, 0x44)
	for _, v := range []meta.Version{meta.VersionExBTC, meta.VersionETH, meta.VersionExETH} {
		_, err := meta.Generate(sk, "alice", v)
		if !deid.IsKind(err, deid.KindVersion) {
			t.Fatalf("version 0x%02x: got err=%v want KindVersion", byte(v), err)
		}
	}
	if _, err := meta.Generate(sk, "alice", meta.Version(0x7F)); !deid.IsKind(err, deid.KindVersion) {
		t.Fatalf("unknown version: got err=%v want KindVersion", err)
	}
}

func TestNewRejectsForgedFingerprint(t *testing.T) {
	sk := testSignKey(t, 0x55)
	m, err := meta.Generate(sk, "carol", meta.VersionMKM)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	forged := m.Fingerprint()
	forged[0] ^= 0x01
	_, err = meta.New(meta.VersionMKM, "carol", m.Key(), forged)
	if !deid.IsKind(err, deid.KindVerification) {
		t.Fatalf("forged fingerprint: got err=%v want KindVerification", err)
	}

	// Valid signature over a different seed must not verify either.
	_, err = meta.New(meta.VersionMKM, "caroline", m.Key(), m.Fingerprint())
	if !deid.IsKind(err, deid.KindVerification) {
		t.Fatalf("wrong seed: got err=%v want KindVerification", err)
	}
}

func TestMatchIdentifierRules(t *testing.T) {
	sk := testSignKey(t, 0x66)
	m, err := meta.Generate(sk, "dave", meta.VersionMKM)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	id, err := m.GenerateIdentifier(address.NetworkMain)
	if err != nil {
		t.Fatalf("GenerateIdentifier: %v", err)
	}

	// Same address, different owner key.
	other, err := meta.Generate(testSignKey(t, 0x77), "dave", meta.VersionMKM)
	if err != nil {
		t.Fatalf("Generate(other): %v", err)
	}
	if other.MatchIdentifier(id) {
		t.Fatalf("different key must not match the identifier")
	}

	// Matching is network-specific through the address, not the meta.
	groupID, err := m.GenerateIdentifier(address.NetworkGroup)
	if err != nil {
		t.Fatalf("GenerateIdentifier(group): %v", err)
	}
	if !m.MatchIdentifier(groupID) {
		t.Fatalf("meta must match its own group identifier")
	}
	if groupID.Equal(id) {
		t.Fatalf("group and main identifiers must differ")
	}
}

func TestMatchAddressBroadcast(t *testing.T) {
	sk := testSignKey(t, 0x88)
	m, err := meta.Generate(sk, "eve", meta.VersionMKM)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if m.MatchAddress(address.Anywhere) {
		t.Fatalf("broadcast address must never match a meta")
	}
	if m.MatchAddress(address.Everywhere) {
		t.Fatalf("broadcast address must never match a meta")
	}
}

func TestRecordRoundTrip(t *testing.T) {
	for fill, cfg := range map[byte]struct {
		seed    string
		version meta.Version
	}{
		0x91: {"frank", meta.VersionMKM},
		0x92: {"", meta.VersionBTC},
	} {
		m, err := meta.Generate(testSignKey(t, fill), cfg.seed, cfg.version)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		b, err := m.CanonicalBytes()
		if err != nil {
			t.Fatalf("CanonicalBytes: %v", err)
		}
		parsed, err := meta.ParseRecord(b)
		if err != nil {
			t.Fatalf("ParseRecord: %v", err)
		}
		if !parsed.Equal(m) {
			t.Fatalf("round-tripped meta differs")
		}
		if !meta.IsCanonical(b) {
			t.Fatalf("CanonicalBytes output not canonical")
		}
		cid1, err := m.CID()
		if err != nil {
			t.Fatalf("CID: %v", err)
		}
		cid2, err := parsed.CID()
		if err != nil {
			t.Fatalf("CID(parsed): %v", err)
		}
		if cid1 != cid2 {
			t.Fatalf("record CID unstable across round trip")
		}
	}
}

func TestParseRecordErrors(t *testing.T) {
	if _, err := meta.ParseRecord([]byte("{")); !deid.IsKind(err, deid.KindFormat) {
		t.Fatalf("malformed JSON: got err=%v want KindFormat", err)
	}
	zeroKey := `{"algorithm":"Ed25519","data":"AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="}`
	if _, err := meta.ParseRecord([]byte(`{"version":3,"key":` + zeroKey + `}`)); !deid.IsKind(err, deid.KindVersion) {
		t.Fatalf("reserved version: got err=%v want KindVersion", err)
	}
}

func TestMetasWithSameSeedDiffer(t *testing.T) {
	m1, err := meta.Generate(testSignKey(t, 0xA1), "grace", meta.VersionMKM)
	if err != nil {
		t.Fatalf("Generate(1): %v", err)
	}
	m2, err := meta.Generate(testSignKey(t, 0xA2), "grace", meta.VersionMKM)
	if err != nil {
		t.Fatalf("Generate(2): %v", err)
	}
	if m1.Equal(m2) {
		t.Fatalf("different keys with the same seed must not be equal")
	}
}
