// Package registry stores canonical meta records and resolves identifiers
// against them.
//
// The derivation core needs no registry: anyone can re-derive an address
// from a meta. What a registry adds is distribution — a place where records
// can be fetched by content identifier and looked up by the identifiers they
// generate. Resolution always re-verifies the binding; a record coming out
// of a store is never trusted on transport alone.
package registry
