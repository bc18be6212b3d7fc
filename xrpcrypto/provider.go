// Package xrpcrypto implements the primitive hashing and signature
// operations the daemon's wire formats depend on: SHA-512-Half, RIPEMD-160,
// AccountID derivation, Ed25519, and secp256k1 signature verification.
//
// Hashing and signing are deterministic pure functions; randomness is used
// only for key generation, the way the teacher's CryptoProvider keeps
// signature verification free of hidden state (see crypto/provider.go).
package xrpcrypto

import "github.com/SMC17/rippled-zig-sub000/types"

// Provider is the narrow crypto interface over this package's primitives. A
// single StandardProvider implementation is shipped. The ledger and
// consensus packages call the package-level functions (Sha512Half and
// friends) directly rather than going through a Provider.
type Provider interface {
	SHA512Half(data []byte) types.Hash256
	RIPEMD160(data []byte) [20]byte
	AccountID(pubkey []byte) types.AccountID
	VerifyEd25519(pubkey, sig, message []byte) bool
	VerifySecp256k1(pubkey, derSig, message []byte) bool
}

// StandardProvider is the default Provider, backed by crypto/sha512,
// golang.org/x/crypto/ripemd160, golang.org/x/crypto/ed25519, and
// github.com/decred/dcrd/dcrec/secp256k1/v4.
type StandardProvider struct{}

var _ Provider = StandardProvider{}

func (StandardProvider) SHA512Half(data []byte) types.Hash256 { return Sha512Half(data) }
func (StandardProvider) RIPEMD160(data []byte) [20]byte       { return Ripemd160(data) }
func (StandardProvider) AccountID(pubkey []byte) types.AccountID {
	return DeriveAccountID(pubkey)
}
func (StandardProvider) VerifyEd25519(pubkey, sig, message []byte) bool {
	return VerifyEd25519(pubkey, sig, message)
}
func (StandardProvider) VerifySecp256k1(pubkey, derSig, message []byte) bool {
	return VerifySecp256k1(pubkey, derSig, message)
}
