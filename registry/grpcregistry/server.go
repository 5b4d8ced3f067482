package grpcregistry

import (
	"context"
	"errors"

	"github.com/ipfs/go-cid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/deid/registry"
)

// Server exposes a registry.Store over the MetaStore gRPC service.
type Server struct {
	UnimplementedMetaStoreServer
	Store registry.Store
}

func (s *Server) Put(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	_ = ctx
	if s == nil || s.Store == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing store")
	}
	b := in.GetValue()
	// Enforce the record contract on the server side too.
	expected, err := registry.CheckRecord(b)
	if err != nil {
		return nil, mapErr(err)
	}
	id, err := s.Store.Put(b)
	if err != nil {
		return nil, mapErr(err)
	}
	if id != expected {
		return nil, status.Error(codes.DataLoss, registry.ErrCIDMismatch.Error())
	}
	return wrapperspb.String(id.String()), nil
}

func (s *Server) Get(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	if s == nil || s.Store == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing store")
	}
	id, err := cid.Decode(in.GetValue())
	if err != nil || !id.Defined() {
		return nil, status.Error(codes.InvalidArgument, registry.ErrInvalidCID.Error())
	}
	b, err := s.Store.Get(id)
	if err != nil {
		return nil, mapErr(err)
	}
	got, err := registry.CheckRecord(b)
	if err != nil {
		return nil, mapErr(err)
	}
	if got != id {
		return nil, status.Error(codes.DataLoss, registry.ErrCIDMismatch.Error())
	}
	return wrapperspb.Bytes(b), nil
}

func (s *Server) Has(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	_ = ctx
	if s == nil || s.Store == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing store")
	}
	id, err := cid.Decode(in.GetValue())
	if err != nil || !id.Defined() {
		return nil, status.Error(codes.InvalidArgument, registry.ErrInvalidCID.Error())
	}
	return wrapperspb.Bool(s.Store.Has(id)), nil
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, registry.ErrNotFound):
		return status.Error(codes.NotFound, registry.ErrNotFound.Error())
	case errors.Is(err, registry.ErrInvalidCID):
		return status.Error(codes.InvalidArgument, registry.ErrInvalidCID.Error())
	case errors.Is(err, registry.ErrInvalidRecord):
		return status.Error(codes.InvalidArgument, registry.ErrInvalidRecord.Error())
	case errors.Is(err, registry.ErrImmutable):
		return status.Error(codes.FailedPrecondition, registry.ErrImmutable.Error())
	case errors.Is(err, registry.ErrCIDMismatch):
		return status.Error(codes.DataLoss, registry.ErrCIDMismatch.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
