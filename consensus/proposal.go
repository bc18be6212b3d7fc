package consensus

import "github.com/SMC17/rippled-zig-sub000/types"

// Position is a validator's view of what the next ledger should contain,
// per §3.
type Position struct {
	PriorLedger  types.Hash256
	Transactions []types.Hash256
	CloseTime    int64
}

// Proposal is one validator's signed statement of its Position, per §3.
// Signature verification is out of scope for this simplified core (see §9);
// Proposal.Signature is carried but not checked.
type Proposal struct {
	ValidatorID [32]byte
	LedgerSeq   uint32
	CloseTime   int64
	Position    Position
	Signature   [64]byte
	Timestamp   int64
}

// maxProposalTransactions is the sanity floor from §4.6: proposals claiming
// more transactions than this are rejected as malformed before they are
// ever counted.
const maxProposalTransactions = 10_000
