package grpcregistry

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"xdao.co/deid/registry"
	"xdao.co/deid/registry/testkit"
)

func newBufClient(t *testing.T, store registry.Store) *Client {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer()
	RegisterMetaStoreServer(srv, &Server{Store: store})

	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	dialer := func(ctx context.Context, s string) (net.Conn, error) { return lis.Dial() }
	cc, err := grpc.DialContext(
		context.Background(),
		"bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("DialContext: %v", err)
	}
	t.Cleanup(func() { _ = cc.Close() })

	return &Client{cc: cc, client: NewMetaStoreClient(cc), Timeout: 2 * time.Second}
}

func TestGRPCRegistry_Memory_RoundTrip(t *testing.T) {
	client := newBufClient(t, registry.NewMemoryStore())

	record := testkit.Record(t, "grpc-roundtrip")
	id, err := client.Put(record)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !id.Defined() {
		t.Fatalf("expected defined CID")
	}
	if !client.Has(id) {
		t.Fatalf("Has: expected true")
	}
	got, err := client.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(record) {
		t.Fatalf("record mismatch")
	}
}

func TestGRPCRegistry_RejectsInvalidRecord(t *testing.T) {
	client := newBufClient(t, registry.NewMemoryStore())

	if _, err := client.Put([]byte("not a record")); err == nil {
		t.Fatalf("Put accepted invalid record")
	}
}

func TestGRPCRegistry_StoreConformance(t *testing.T) {
	testkit.RunStoreConformance(t, func(t *testing.T) registry.Store {
		return newBufClient(t, registry.NewMemoryStore())
	})
}
