package xrpcrypto

import "golang.org/x/crypto/ed25519"

// GenerateEd25519 creates a fresh Ed25519 key pair.
func GenerateEd25519() (pub ed25519.PublicKey, priv ed25519.PrivateKey, err error) {
	return ed25519.GenerateKey(nil)
}

// SignEd25519 signs message with priv over the raw bytes, matching §4.2's
// "standard generate/sign/verify over raw message".
func SignEd25519(priv ed25519.PrivateKey, message []byte) []byte {
	return ed25519.Sign(priv, message)
}

// VerifyEd25519 verifies a signature produced by SignEd25519. It returns
// false (rather than erroring) on any malformed input, since callers only
// ever need a boolean accept/reject.
func VerifyEd25519(pubkey, sig, message []byte) bool {
	if len(pubkey) != ed25519.PublicKeySize {
		return false
	}
	if len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pubkey), message, sig)
}
