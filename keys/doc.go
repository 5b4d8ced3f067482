// Package keys provides the signature capabilities the identity core relies
// on.
//
// The core consumes only the SignKey/VerifyKey interfaces; the concrete
// algorithms here (RSA with PKCS#1 v1.5 over SHA-256, Ed25519, Dilithium3)
// are interchangeable behind them. A VerifyKey also serializes itself to
// canonical bytes, which is what keyless meta versions feed into address
// derivation.
//
// The filesystem-backed KeyStore is a local-first convenience for the CLI,
// not part of the protocol core.
package keys
