package deid

import "errors"

// Kind is a stable category for programmatic error handling.
//
// These categories are intended to remain stable across versions.
// Callers should branch on Kind/RuleID rather than matching error strings.
//
// NOTE: Error() strings are intentionally kept human-readable and may evolve.
// Use errors.As to extract *Error for structured handling.
type Kind string

const (
	// KindFormat covers malformed identifier text, invalid name grammar and
	// malformed Base58 or record encodings.
	KindFormat Kind = "Format"
	// KindChecksum covers address check-code mismatches on decode.
	KindChecksum Kind = "Checksum"
	// KindVersion covers unknown or reserved meta versions, and a seed that
	// is required by the version but absent or invalid.
	KindVersion Kind = "Version"
	// KindVerification covers signatures that fail to verify against a
	// claimed public key.
	KindVerification Kind = "Verification"
	// KindInternal covers conditions that indicate a programming error.
	KindInternal Kind = "Internal"
)

// Error is the module's structured error type.
//
// RuleID is a stable identifier (e.g. DEID-ADDR-201, DEID-NAME-102) that
// names the violated invariant or validation rule.
//
// Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	RuleID  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewError returns a structured error with the given kind and rule ID.
func NewError(kind Kind, ruleID, msg string) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: msg}
}

// WrapError returns a structured error that wraps cause.
func WrapError(kind Kind, ruleID, msg string, cause error) error {
	if cause == nil {
		return NewError(kind, ruleID, msg)
	}
	return &Error{Kind: kind, RuleID: ruleID, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// RuleID returns the stable RuleID for a structured error, or "" if unknown.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}
