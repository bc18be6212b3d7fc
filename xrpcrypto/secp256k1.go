package xrpcrypto

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// SignSecp256k1 signs SHA-512-Half(STX\x00 ‖ message) with priv and returns a
// DER-encoded signature (tag 0x30), per §4.2.
func SignSecp256k1(priv *secp256k1.PrivateKey, message []byte) []byte {
	digest := SigningHash(message)
	sig := ecdsa.Sign(priv, digest[:])
	return sig.Serialize()
}

// VerifySecp256k1 parses a DER signature and verifies it against
// SHA-512-Half(STX\x00 ‖ message). It returns false on any parse or
// verification failure.
func VerifySecp256k1(pubkey, derSig, message []byte) bool {
	if len(derSig) == 0 || derSig[0] != 0x30 {
		return false
	}
	pub, err := secp256k1.ParsePubKey(pubkey)
	if err != nil {
		return false
	}
	sig, err := ecdsa.ParseDERSignature(derSig)
	if err != nil {
		return false
	}
	digest := SigningHash(message)
	return sig.Verify(digest[:], pub)
}
