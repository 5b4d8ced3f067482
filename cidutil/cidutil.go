// Package cidutil computes content identifiers for canonical meta record
// bytes.
package cidutil

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// RecordCID returns the CIDv1 string for canonical record bytes, using the
// "raw" multicodec and a sha2-256 multihash.
func RecordCID(data []byte) string {
	id, err := RecordCIDValue(data)
	if err != nil {
		// multihash.Sum with SHA2_256 and default length cannot fail.
		return ""
	}
	return id.String()
}

// RecordCIDValue returns the CIDv1 (raw + sha2-256) derived from data.
func RecordCIDValue(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}
