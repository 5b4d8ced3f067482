package registry_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"xdao.co/deid/cidutil"
	"xdao.co/deid/registry"
	"xdao.co/deid/registry/testkit"
)

func TestFSStoreDetectsCorruption(t *testing.T) {
	dir := t.TempDir()
	store, err := registry.NewFSStore(dir)
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}

	record := testkit.Record(t, "corrupt")
	id, err := store.Put(record)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	other := testkit.Record(t, "other")
	if err := os.WriteFile(filepath.Join(dir, id.String()), other, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err = store.Get(id)
	if !errors.Is(err, registry.ErrCIDMismatch) {
		t.Fatalf("Get corrupted: got err=%v want ErrCIDMismatch", err)
	}
}

func TestFSStorePersistsAcrossOpens(t *testing.T) {
	dir := t.TempDir()
	store, err := registry.NewFSStore(dir)
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}

	record := testkit.Record(t, "persist")
	id, err := store.Put(record)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	reopened, err := registry.NewFSStore(dir)
	if err != nil {
		t.Fatalf("NewFSStore(reopen): %v", err)
	}
	got, err := reopened.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want, err := cidutil.RecordCIDValue(got)
	if err != nil {
		t.Fatalf("RecordCIDValue: %v", err)
	}
	if want != id {
		t.Fatalf("reopened bytes do not match CID")
	}
}
