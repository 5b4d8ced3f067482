// Package deid defines the shared error taxonomy for the decentralized
// entity identity libraries in this module.
//
// The derivation pipeline (meta -> address -> identifier) lives in the
// subpackages:
//
//   - address:    25-byte address derivation, Base58 codec, network types
//   - identifier: the name@address[/terminal] text form
//   - keys:       signature capabilities (RSA, Ed25519, Dilithium3)
//   - meta:       version-dispatched meta generation and the match engine
//   - cidutil:    CIDs for canonical meta records
//   - registry:   meta record storage and identifier resolution
//
// All derivations are pure functions: two independent implementations that
// apply the same version rule to the same inputs must produce byte-identical
// addresses, so matching an identifier against a meta is plain structural
// equality and never a remote call.
package deid
