package grpcregistry

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"xdao.co/deid/registry"
)

func mapRPC(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.NotFound:
		return registry.ErrNotFound
	case codes.InvalidArgument:
		// Server uses InvalidArgument for malformed CIDs and unverifiable records.
		if st.Message() == registry.ErrInvalidRecord.Error() {
			return registry.ErrInvalidRecord
		}
		return registry.ErrInvalidCID
	case codes.FailedPrecondition:
		if st.Message() == registry.ErrImmutable.Error() {
			return registry.ErrImmutable
		}
		return err
	case codes.DataLoss:
		// Server uses DataLoss when bytes do not match the requested CID.
		return registry.ErrCIDMismatch
	default:
		// Best-effort: if the server sent a known registry error message, preserve it.
		switch st.Message() {
		case registry.ErrNotFound.Error():
			return registry.ErrNotFound
		case registry.ErrInvalidCID.Error():
			return registry.ErrInvalidCID
		case registry.ErrCIDMismatch.Error():
			return registry.ErrCIDMismatch
		default:
			return err
		}
	}
}
