// Package types defines the sum types and fixed-size identifiers shared by
// every other package in the daemon: account identifiers, currency amounts,
// transactions and their result taxonomy.
package types

import (
	"encoding/hex"
	"fmt"
)

// AccountID is the 20-byte opaque identifier derived from a public key as
// RIPEMD-160(SHA-256(pubkey)). Equality and hashing are bytewise, which is
// why it is a plain array rather than a slice: it can be used directly as a
// map key.
type AccountID [20]byte

// ZeroAccountID is the all-zero identifier, used for unset optional fields.
var ZeroAccountID AccountID

func (a AccountID) String() string {
	return hex.EncodeToString(a[:])
}

// IsZero reports whether a carries no identity.
func (a AccountID) IsZero() bool {
	return a == ZeroAccountID
}

// AccountIDFromHex parses a 40-character hex string into an AccountID.
func AccountIDFromHex(s string) (AccountID, error) {
	var a AccountID
	b, err := hex.DecodeString(s)
	if err != nil {
		return a, fmt.Errorf("types: invalid account id hex: %w", err)
	}
	if len(b) != len(a) {
		return a, fmt.Errorf("types: account id must be %d bytes, got %d", len(a), len(b))
	}
	copy(a[:], b)
	return a, nil
}

// Hash256 is a generic 32-byte digest, used for ledger and transaction hashes.
type Hash256 [32]byte

func (h Hash256) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether h is the all-zero hash.
func (h Hash256) IsZero() bool {
	return h == Hash256{}
}

// Drops is an unsigned count of the smallest XRP unit.
type Drops uint64

const (
	// XRP is the number of drops in one XRP.
	XRP Drops = 1_000_000
	// MaxXRP is the maximum amount of XRP that can ever exist, in drops.
	MaxXRP Drops = 100_000_000_000 * XRP
	// MinTxFee is the minimum fee, in drops, accepted for any transaction.
	MinTxFee Drops = 10
)

// AccountRoot mirrors the XRPL AccountRoot ledger entry, trimmed to the
// fields of the daemon's data model; the apply path reads and writes only
// Balance and Sequence.
type AccountRoot struct {
	Account           AccountID
	Balance           Drops
	Flags             uint32
	OwnerCount        uint32
	PreviousTxnID     Hash256
	PreviousTxnLgrSeq uint32
	Sequence          uint32
}

// WithinSupplyBound reports whether the balance respects the network cap.
func (a AccountRoot) WithinSupplyBound() bool {
	return a.Balance <= MaxXRP
}
