// Package memory registers the in-process store backend.
package memory

import (
	"flag"

	"xdao.co/deid/registry"
	"xdao.co/deid/registry/storeregistry"
)

func init() {
	storeregistry.MustRegister(storeregistry.Backend{
		Name:        "memory",
		Description: "In-process meta store (contents are lost on exit)",
		Usage:       storeregistry.UsageDaemon,
		RegisterFlags: func(fs *flag.FlagSet) {
			// No flags.
			_ = fs
		},
		Open: func() (registry.Store, func() error, error) {
			return registry.NewMemoryStore(), nil, nil
		},
	})
}
