// Package testkit provides a reusable conformance suite for registry.Store
// implementations.
package testkit

import (
	"bytes"
	"crypto/ed25519"
	"testing"

	"github.com/ipfs/go-cid"

	"xdao.co/deid/cidutil"
	"xdao.co/deid/keys"
	"xdao.co/deid/meta"
	"xdao.co/deid/registry"
)

// NewStore constructs a fresh, empty Store instance for a test.
// The returned Store MUST be isolated from other tests.
type NewStore func(t *testing.T) registry.Store

// Record returns canonical record bytes for a deterministic test meta. The
// seed selects the key material, so distinct seeds yield distinct records.
func Record(t *testing.T, seed string) []byte {
	t.Helper()

	var keySeed [ed25519.SeedSize]byte
	copy(keySeed[:], seed)
	sk, err := keys.NewEd25519SignKey(keySeed[:])
	if err != nil {
		t.Fatalf("NewEd25519SignKey failed: %v", err)
	}

	m, err := meta.Generate(sk, seed, meta.VersionMKM)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, err := m.CanonicalBytes()
	if err != nil {
		t.Fatalf("CanonicalBytes failed: %v", err)
	}
	return b
}

func RunStoreConformance(t *testing.T, newStore NewStore) {
	t.Helper()

	t.Run("PutGetRoundTrip", func(t *testing.T) {
		store := newStore(t)
		want := Record(t, "roundtrip")

		id, err := store.Put(want)
		if err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		wantID, err := cidutil.RecordCIDValue(want)
		if err != nil {
			t.Fatalf("RecordCIDValue failed: %v", err)
		}
		if id != wantID {
			t.Fatalf("Put CID mismatch: got %s want %s", id, wantID)
		}

		got, err := store.Get(id)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("Get bytes mismatch")
		}
	})

	t.Run("PutIdempotent", func(t *testing.T) {
		store := newStore(t)
		b := Record(t, "idempotent")

		id1, err := store.Put(b)
		if err != nil {
			t.Fatalf("Put(1) failed: %v", err)
		}
		id2, err := store.Put(b)
		if err != nil {
			t.Fatalf("Put(2) failed: %v", err)
		}
		if id1 != id2 {
			t.Fatalf("Put not idempotent: %s vs %s", id1, id2)
		}
	})

	t.Run("RejectNonCanonical", func(t *testing.T) {
		store := newStore(t)
		b := Record(t, "canonical")
		mangled := append([]byte("  "), b...)

		if _, err := store.Put(mangled); err == nil {
			t.Fatalf("Put accepted non-canonical record")
		}
		if _, err := store.Put([]byte("{")); err == nil {
			t.Fatalf("Put accepted malformed record")
		}
	})

	t.Run("HasAndNotFound", func(t *testing.T) {
		store := newStore(t)
		b := Record(t, "missing")
		id, err := cidutil.RecordCIDValue(b)
		if err != nil {
			t.Fatalf("RecordCIDValue failed: %v", err)
		}

		if store.Has(id) {
			t.Fatalf("Has returned true for missing CID")
		}
		_, err = store.Get(id)
		if !registry.IsNotFound(err) {
			t.Fatalf("Get missing: got err=%v want ErrNotFound", err)
		}

		if _, err := store.Put(b); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if !store.Has(id) {
			t.Fatalf("Has returned false after Put")
		}
	})

	t.Run("RejectUndefCID", func(t *testing.T) {
		store := newStore(t)
		var undef cid.Cid
		if store.Has(undef) {
			t.Fatalf("Has should be false for undefined CID")
		}
		if _, err := store.Get(undef); err == nil {
			t.Fatalf("Get should fail for undefined CID")
		}
	})
}
