// deid_vector_gen regenerates the immortal conformance vectors under
// testdata/conformance/deid from the stored private keys. Run it after
// changing the record encoding and compare the output against the checked-in
// files.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"xdao.co/deid/address"
	"xdao.co/deid/keys"
	"xdao.co/deid/meta"
)

func main() {
	root := filepath.Join("testdata", "conformance", "deid")
	if len(os.Args) > 1 {
		root = os.Args[1]
	}

	for _, name := range []string{"hulk", "moki"} {
		pemBytes, err := os.ReadFile(filepath.Join(root, name+".secret.pem"))
		if err != nil {
			panic(err)
		}
		sk, err := keys.ParseRSASignKey(string(pemBytes))
		if err != nil {
			panic(err)
		}
		m, err := meta.Generate(sk, name, meta.VersionMKM)
		if err != nil {
			panic(err)
		}
		record, err := m.CanonicalBytes()
		if err != nil {
			panic(err)
		}
		id, err := m.GenerateIdentifier(address.NetworkMain)
		if err != nil {
			panic(err)
		}
		recordCID, err := m.CID()
		if err != nil {
			panic(err)
		}

		fmt.Printf("%s\n", name)
		fmt.Printf("  ID=%s\n", id)
		fmt.Printf("  Search-Number=%d\n", id.Number())
		fmt.Printf("  Meta-CID=%s\n", recordCID)
		fmt.Printf("  ---BEGIN RECORD---\n  %s\n  ---END RECORD---\n", string(record))
	}
}
