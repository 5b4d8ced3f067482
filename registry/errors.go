package registry

import "errors"

var (
	ErrNotFound      = errors.New("registry: not found")
	ErrInvalidCID    = errors.New("registry: invalid cid")
	ErrCIDMismatch   = errors.New("registry: cid mismatch")
	ErrImmutable     = errors.New("registry: immutable record mismatch")
	ErrInvalidRecord = errors.New("registry: record failed verification")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
