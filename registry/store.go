package registry

import (
	"errors"

	"github.com/ipfs/go-cid"

	"xdao.co/deid/cidutil"
	"xdao.co/deid/meta"
)

// Store is a minimal content-addressed store for canonical meta record
// bytes.
//
// Contract:
//   - Put MUST be idempotent and MUST reject bytes that are not a canonical,
//     verifiable meta record.
//   - Stored records MUST be immutable.
//   - CIDs MUST be derived from the bytes written.
//   - Get MUST return ErrNotFound when the CID is absent.
type Store interface {
	Put(record []byte) (cid.Cid, error)
	Get(id cid.Cid) ([]byte, error)
	Has(id cid.Cid) bool
}

// CheckRecord enforces the Put contract: the bytes must parse as a meta
// record whose binding verifies and must already be in canonical form. It
// returns the record CID.
func CheckRecord(record []byte) (cid.Cid, error) {
	canon, err := meta.Canonicalize(record)
	if err != nil {
		return cid.Undef, errors.Join(ErrInvalidRecord, err)
	}
	if string(canon) != string(record) {
		return cid.Undef, ErrInvalidRecord
	}
	return cidutil.RecordCIDValue(record)
}
