package registry

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	"github.com/ipfs/go-cid"

	"xdao.co/deid/cidutil"
)

// FSStore is a local filesystem-backed Store.
//
// Records are stored immutably under <root>/<cid>. The implementation is
// offline and deterministic: it never touches the network and re-validates
// bytes against the requested CID on every read.
type FSStore struct {
	root string
}

var _ Store = (*FSStore)(nil)

// NewFSStore constructs a store rooted at root, creating the directory if
// needed.
func NewFSStore(root string) (*FSStore, error) {
	if root == "" {
		return nil, errors.New("registry: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{root: root}, nil
}

func (s *FSStore) path(id cid.Cid) string {
	return filepath.Join(s.root, id.String())
}

func (s *FSStore) Put(record []byte) (cid.Cid, error) {
	id, err := CheckRecord(record)
	if err != nil {
		return cid.Undef, err
	}
	path := s.path(id)
	if existing, rerr := os.ReadFile(path); rerr == nil {
		if !bytes.Equal(existing, record) {
			return cid.Undef, ErrImmutable
		}
		return id, nil
	}
	tmp, err := os.CreateTemp(s.root, ".put-*")
	if err != nil {
		return cid.Undef, err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(record); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return cid.Undef, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return cid.Undef, err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return cid.Undef, err
	}
	return id, nil
}

func (s *FSStore) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, ErrInvalidCID
	}
	b, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	got, err := cidutil.RecordCIDValue(b)
	if err != nil {
		return nil, err
	}
	if got != id {
		// On-disk corruption: validity comes from the hash, not the filename.
		return nil, ErrCIDMismatch
	}
	return b, nil
}

func (s *FSStore) Has(id cid.Cid) bool {
	if !id.Defined() {
		return false
	}
	_, err := os.Stat(s.path(id))
	return err == nil
}
