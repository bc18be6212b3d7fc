package ledger

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SMC17/rippled-zig-sub000/types"
	"github.com/SMC17/rippled-zig-sub000/xrpcrypto"
)

// ChainError enumerates the chain-continuity failures from §4.3/§4.9/§7.
// Following the teacher's TxError idiom (consensus/errors.go), each value
// carries a stable Code for callers that want to match on the failure kind
// without string-matching Error().
type ChainError struct {
	Code string
	Msg  string
}

func (e *ChainError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

const (
	ErrCodeSequenceGap        = "SequenceGap"
	ErrCodeParentHashMismatch = "ParentHashMismatch"
	ErrCodeInvalidLedgerData  = "InvalidLedgerData"
)

func chainErr(code, msg string) error {
	return &ChainError{Code: code, Msg: msg}
}

// CandidateTx is the minimal shape closeLedger needs from a pending
// transaction to build the transaction merkle root (§4.3 step 1).
type CandidateTx struct {
	Account  types.AccountID
	Sequence uint32
	Fee      types.Drops
}

// now is a seam for deterministic testing, mirroring the teacher's
// package-level nowUnix hook in cmd/rubin-node/main.go.
var now = func() time.Time { return time.Now() }

// Manager owns the append-only ledger history and the current account
// state. It is the sole mutator of the history, and external callers only
// ever see by-value Ledger snapshots (§9's ownership design note); the
// account state is handed out live by Accounts and mutated by its callers.
type Manager struct {
	mu       sync.RWMutex
	history  []Ledger
	accounts *AccountState
}

// NewManager returns a Manager seeded with the genesis ledger and an empty
// account state.
func NewManager() *Manager {
	return &Manager{
		history:  []Ledger{Genesis()},
		accounts: NewAccountState(),
	}
}

// Accounts returns the live account state. Callers on the single-threaded
// request path may mutate it directly; see spec §5's scheduling model.
func (m *Manager) Accounts() *AccountState {
	return m.accounts
}

// Current returns the most recently appended ledger, by value.
func (m *Manager) Current() Ledger {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.history[len(m.history)-1]
}

// ByIndex returns the ledger at the given sequence, if present.
func (m *Manager) ByIndex(seq uint32) (Ledger, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, l := range m.history {
		if l.Sequence == seq {
			return l, true
		}
	}
	return Ledger{}, false
}

// History returns a copy of the full chain, oldest first.
func (m *Manager) History() []Ledger {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Ledger, len(m.history))
	copy(out, m.history)
	return out
}

// TransactionMerkleRoot hashes each candidate as SHA-512-Half of
// account(20) ‖ sequence(4, BE) ‖ fee(8, BE), then reduces pairwise,
// duplicating the final leaf on odd counts. An empty set yields the zero
// hash, per §4.3 step 1.
func TransactionMerkleRoot(txs []CandidateTx) types.Hash256 {
	if len(txs) == 0 {
		return types.Hash256{}
	}
	leaves := make([]types.Hash256, len(txs))
	for i, tx := range txs {
		buf := make([]byte, 0, 20+4+8)
		buf = append(buf, tx.Account[:]...)
		seqBuf := make([]byte, 4)
		binary.BigEndian.PutUint32(seqBuf, tx.Sequence)
		buf = append(buf, seqBuf...)
		feeBuf := make([]byte, 8)
		binary.BigEndian.PutUint64(feeBuf, uint64(tx.Fee))
		buf = append(buf, feeBuf...)
		leaves[i] = xrpcrypto.Sha512Half(buf)
	}

	level := leaves
	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		next := make([]types.Hash256, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			pair := make([]byte, 0, 64)
			pair = append(pair, level[i][:]...)
			pair = append(pair, level[i+1][:]...)
			next = append(next, xrpcrypto.Sha512Half(pair))
		}
		level = next
	}
	return level[0]
}

// CloseLedger implements §4.3's closeLedger(txs): it builds the
// transaction merkle root, derives the (deliberately simplified,
// placeholder — see §9 open question (a)) account-state hash from the
// previous ledger's hash, and appends a new ledger chained to the current
// tip.
func (m *Manager) CloseLedger(txs []CandidateTx) Ledger {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.history[len(m.history)-1]
	next := Ledger{
		Sequence:        prev.Sequence + 1,
		ParentHash:      prev.Hash,
		CloseTime:       now().Unix(),
		ParentCloseTime: prev.CloseTime,
		CloseFlags:      0,
		TotalCoins:      prev.TotalCoins,
	}
	next.AccountStateHash = xrpcrypto.Sha512Half(prev.Hash[:])
	next.TransactionHash = TransactionMerkleRoot(txs)
	next.Hash = next.ComputeHash()

	m.history = append(m.history, next)
	return next
}

// AppendLedger implements the external-feed path from §4.3: it enforces
// sequence and parent-hash continuity before appending, returning a
// ChainError otherwise. The account state is not touched by this path; see
// §4.9 for the broader sync contract this feeds.
func (m *Manager) AppendLedger(l Ledger) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := m.history[len(m.history)-1]
	if l.Sequence != current.Sequence+1 {
		return chainErr(ErrCodeSequenceGap, fmt.Sprintf("expected sequence %d, got %d", current.Sequence+1, l.Sequence))
	}
	if l.ParentHash != current.Hash {
		return chainErr(ErrCodeParentHashMismatch, fmt.Sprintf("ledger %d parent_hash does not match current tip hash", l.Sequence))
	}
	m.history = append(m.history, l)
	return nil
}

// ErrEmptyHistory describes a Manager whose history holds no ledger. No
// operation in this package returns it: NewManager always seeds the
// genesis ledger.
var ErrEmptyHistory = errors.New("ledger: history is empty")
