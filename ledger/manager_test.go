package ledger

import (
	"testing"
	"time"

	"github.com/SMC17/rippled-zig-sub000/types"
	"github.com/stretchr/testify/require"
)

func withFixedClock(t *testing.T, unix int64) {
	t.Helper()
	old := now
	now = func() time.Time { return time.Unix(unix, 0) }
	t.Cleanup(func() { now = old })
}

func TestGenesisInvariants(t *testing.T) {
	g := Genesis()
	require.Equal(t, uint32(1), g.Sequence)
	require.True(t, g.Hash.IsZero())
	require.True(t, g.ParentHash.IsZero())
	require.Equal(t, types.MaxXRP, g.TotalCoins)
}

func TestCloseLedgerChainsToParent(t *testing.T) {
	withFixedClock(t, 1000)
	m := NewManager()
	first := m.CloseLedger(nil)
	require.Equal(t, uint32(2), first.Sequence)
	require.Equal(t, Genesis().Hash, first.ParentHash)
	require.Equal(t, first.Hash, first.ComputeHash())

	second := m.CloseLedger(nil)
	require.Equal(t, uint32(3), second.Sequence)
	require.Equal(t, first.Hash, second.ParentHash)
}

func TestCloseLedgerEmptyTxSetYieldsZeroTransactionHash(t *testing.T) {
	withFixedClock(t, 1000)
	m := NewManager()
	l := m.CloseLedger(nil)
	require.True(t, l.TransactionHash.IsZero())
}

func TestCloseLedgerTotalCoinsNotHashed(t *testing.T) {
	withFixedClock(t, 1000)
	m := NewManager()
	l := m.CloseLedger(nil)
	mutated := l
	mutated.TotalCoins = 0
	require.Equal(t, l.ComputeHash(), mutated.ComputeHash())
}

func TestAppendLedgerRejectsSequenceGap(t *testing.T) {
	m := NewManager()
	bad := Ledger{Sequence: 5, ParentHash: m.Current().Hash}
	err := m.AppendLedger(bad)
	require.Error(t, err)
	var chainErr *ChainError
	require.ErrorAs(t, err, &chainErr)
	require.Equal(t, ErrCodeSequenceGap, chainErr.Code)
}

func TestAppendLedgerRejectsParentHashMismatch(t *testing.T) {
	m := NewManager()
	bad := Ledger{Sequence: 2, ParentHash: types.Hash256{0xff}}
	err := m.AppendLedger(bad)
	require.Error(t, err)
	var chainErr *ChainError
	require.ErrorAs(t, err, &chainErr)
	require.Equal(t, ErrCodeParentHashMismatch, chainErr.Code)
}

func TestAppendLedgerAcceptsValidChain(t *testing.T) {
	m := NewManager()
	next := Ledger{Sequence: 2, ParentHash: m.Current().Hash}
	next.Hash = next.ComputeHash()
	require.NoError(t, m.AppendLedger(next))
	require.Equal(t, next, m.Current())
}

func TestTransactionMerkleRootOddCountDuplicatesFinalLeaf(t *testing.T) {
	txs := []CandidateTx{
		{Account: types.AccountID{1}, Sequence: 1, Fee: 10},
		{Account: types.AccountID{2}, Sequence: 1, Fee: 10},
		{Account: types.AccountID{3}, Sequence: 1, Fee: 10},
	}
	withDup := append(append([]CandidateTx{}, txs...), txs[2])
	require.Equal(t, TransactionMerkleRoot(withDup), TransactionMerkleRoot(txs))
}

func TestTransactionMerkleRootEmptyIsZero(t *testing.T) {
	require.True(t, TransactionMerkleRoot(nil).IsZero())
}
