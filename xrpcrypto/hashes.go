package xrpcrypto

import (
	"crypto/sha256"
	"crypto/sha512"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required for XRPL-compatible AccountID derivation

	"github.com/SMC17/rippled-zig-sub000/types"
)

// Sha512Half is SHA-512, truncated to the first 32 bytes, per §4.2.
func Sha512Half(data []byte) types.Hash256 {
	full := sha512.Sum512(data)
	var half types.Hash256
	copy(half[:], full[:32])
	return half
}

// Ripemd160 is the standard 160-bit RIPEMD digest.
func Ripemd160(data []byte) [20]byte {
	h := ripemd160.New()
	_, _ = h.Write(data)
	var out [20]byte
	copy(out[:], h.Sum(nil))
	return out
}

// DeriveAccountID computes AccountID(pubkey) = RIPEMD-160(SHA-256(pubkey)).
func DeriveAccountID(pubkey []byte) types.AccountID {
	sha := sha256.Sum256(pubkey)
	return types.AccountID(Ripemd160(sha[:]))
}

// StxSigningPrefix is the 4-byte prefix prepended before hashing a message
// for secp256k1 signing, per §4.2's strict vector ("STX\x00").
var StxSigningPrefix = [4]byte{0x53, 0x54, 0x58, 0x00}

// SigningHash returns SHA-512-Half(STX\x00 ‖ message), the digest that is
// actually signed/verified for secp256k1.
func SigningHash(message []byte) types.Hash256 {
	buf := make([]byte, 0, len(StxSigningPrefix)+len(message))
	buf = append(buf, StxSigningPrefix[:]...)
	buf = append(buf, message...)
	return Sha512Half(buf)
}
