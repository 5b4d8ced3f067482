// Package localfs registers the filesystem store backend.
package localfs

import (
	"flag"
	"fmt"

	"xdao.co/deid/registry"
	"xdao.co/deid/registry/storeregistry"
)

var (
	flagLocalDir string
)

func init() {
	storeregistry.MustRegister(storeregistry.Backend{
		Name:        "localfs",
		Description: "Local filesystem meta store (directory)",
		Usage:       storeregistry.UsageCLI | storeregistry.UsageDaemon,
		RegisterFlags: func(fs *flag.FlagSet) {
			fs.StringVar(&flagLocalDir, "localfs-dir", "", "LocalFS store directory (for --backend=localfs)")
		},
		Open: func() (registry.Store, func() error, error) {
			if flagLocalDir == "" {
				return nil, nil, fmt.Errorf("missing --localfs-dir")
			}
			store, err := registry.NewFSStore(flagLocalDir)
			return store, nil, err
		},
	})
}
