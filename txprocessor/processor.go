// Package txprocessor implements the submit/validate/apply pipeline from
// §4.4-§4.5: decoding a wire submit blob, validating it against current
// account state without mutating anything, applying it, and queuing it for
// the next ledger close.
package txprocessor

import (
	"sync"

	"github.com/SMC17/rippled-zig-sub000/ledger"
	"github.com/SMC17/rippled-zig-sub000/types"
)

// Processor owns the FIFO of applied transactions awaiting inclusion in a
// closed ledger, for a single ledger.Manager. It is used from the single-threaded request path
// described in spec §5, so its own locking exists only to make concurrent
// RPC handlers safe, not to allow concurrent ledger mutation.
type Processor struct {
	mu      sync.Mutex
	manager *ledger.Manager
	pending []types.Transaction
}

// New returns a Processor bound to manager's account state.
func New(manager *ledger.Manager) *Processor {
	return &Processor{manager: manager}
}

// Validate implements §4.4's five-step validation rule against the current
// account state. It performs no mutation: a non-success result always
// leaves state untouched.
func (p *Processor) Validate(tx types.Transaction) (types.TransactionResult, error) {
	root, ok := p.manager.Accounts().Get(tx.Account)
	if !ok {
		return types.TelLocalError, submitErr(CodeAccountNotFound, tx.Account.String())
	}
	if tx.Fee < types.MinTxFee {
		return types.TemMalformed, submitErr(CodeSubmitFeeTooLow, "fee below minimum")
	}
	if root.Balance < tx.Fee {
		return types.TecClaim, submitErr(CodeSubmitInsufficientFeeBalance, "balance below fee")
	}
	if tx.Sequence != root.Sequence {
		return types.TerRetry, submitErr(CodeSubmitSequenceMismatch, "sequence does not match account")
	}
	return types.TesSuccess, nil
}

// Submit decodes blob, validates the resulting transaction, and — only on a
// tes_success validation — applies it to account state and appends it to
// the pending queue, all within this single call per §4.5 step 5's
// atomicity requirement. The returned TransactionResult is always
// meaningful; the returned error is non-nil whenever the result is not
// tes_success, carrying the SubmitError detail.
func (p *Processor) Submit(blob []byte) (types.TransactionResult, error) {
	tx, err := DecodeSubmitBlob(blob)
	if err != nil {
		return types.TefFailure, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	result, verr := p.Validate(tx)
	if result != types.TesSuccess {
		return result, verr
	}

	if err := Apply(p.manager.Accounts(), tx); err != nil {
		return types.TefFailure, err
	}

	p.pending = append(p.pending, tx)
	return types.TesSuccess, nil
}

// GetPending returns a copy of the pending queue, oldest first.
func (p *Processor) GetPending() []types.Transaction {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]types.Transaction, len(p.pending))
	copy(out, p.pending)
	return out
}

// ClearPending empties the pending queue, called once its contents have
// been taken as the candidate set of the next consensus round.
func (p *Processor) ClearPending() {
	p.mu.Lock()
	p.pending = nil
	p.mu.Unlock()
}

// ToCandidates adapts a pending-queue snapshot to the CandidateTx shape a
// ledger.Manager needs to close a ledger around it (§4.3 step 1).
func ToCandidates(txs []types.Transaction) []ledger.CandidateTx {
	out := make([]ledger.CandidateTx, len(txs))
	for i, tx := range txs {
		out[i] = ledger.CandidateTx{Account: tx.Account, Sequence: tx.Sequence, Fee: tx.Fee}
	}
	return out
}
