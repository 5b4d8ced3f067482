// Command xdao-midgrpcd serves a meta record store over gRPC.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"google.golang.org/grpc"

	"xdao.co/deid/registry/grpcregistry"
	"xdao.co/deid/registry/storeregistry"

	_ "xdao.co/deid/registry/storeregistry/localfs"
	_ "xdao.co/deid/registry/storeregistry/memory"
)

func main() {
	fs := flag.NewFlagSet("xdao-midgrpcd", flag.ExitOnError)
	listen := fs.String("listen", "127.0.0.1:7677", "listen address")
	backend := fs.String("backend", "localfs", "store backend name")
	listBackends := fs.Bool("list-backends", false, "List supported backends and exit")

	storeregistry.RegisterFlags(fs, storeregistry.UsageDaemon)

	_ = fs.Parse(os.Args[1:])
	if *listBackends {
		for _, b := range storeregistry.List(storeregistry.UsageDaemon) {
			if b.Description == "" {
				_, _ = fmt.Fprintf(os.Stdout, "%s\n", b.Name)
				continue
			}
			_, _ = fmt.Fprintf(os.Stdout, "%s\t%s\n", b.Name, b.Description)
		}
		return
	}

	store, closeFn, err := storeregistry.Open(*backend, storeregistry.UsageDaemon)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if closeFn != nil {
		defer closeFn()
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer lis.Close()

	s := grpc.NewServer()
	grpcregistry.RegisterMetaStoreServer(s, &grpcregistry.Server{Store: store})

	fmt.Fprintf(os.Stderr, "xdao-midgrpcd listening on %s (backend=%s)\n", lis.Addr().String(), *backend)
	if err := s.Serve(lis); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
