// Package grpcstore registers the remote gRPC store backend.
package grpcstore

import (
	"flag"
	"fmt"
	"time"

	"xdao.co/deid/registry"
	"xdao.co/deid/registry/grpcregistry"
	"xdao.co/deid/registry/storeregistry"
)

var (
	flagTarget  string
	flagTimeout time.Duration
)

func init() {
	storeregistry.MustRegister(storeregistry.Backend{
		Name:        "grpc",
		Description: "Remote meta store over gRPC (xdao-midgrpcd)",
		Usage:       storeregistry.UsageCLI,
		RegisterFlags: func(fs *flag.FlagSet) {
			fs.StringVar(&flagTarget, "grpc-target", "", "MetaStore gRPC target (for --backend=grpc)")
			fs.DurationVar(&flagTimeout, "grpc-timeout", 5*time.Second, "Per-RPC timeout (for --backend=grpc)")
		},
		Open: func() (registry.Store, func() error, error) {
			if flagTarget == "" {
				return nil, nil, fmt.Errorf("missing --grpc-target")
			}
			client, err := grpcregistry.Dial(flagTarget, grpcregistry.DialOptions{Timeout: flagTimeout})
			if err != nil {
				return nil, nil, err
			}
			client.Timeout = flagTimeout
			return client, client.Close, nil
		},
	})
}
