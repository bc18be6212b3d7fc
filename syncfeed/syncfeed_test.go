package syncfeed

import (
	"testing"

	"github.com/SMC17/rippled-zig-sub000/ledger"
	"github.com/stretchr/testify/require"
)

func validNext(m *ledger.Manager) ledger.Ledger {
	next := ledger.Ledger{Sequence: m.Current().Sequence + 1, ParentHash: m.Current().Hash}
	next.Hash = next.ComputeHash()
	return next
}

func TestIngestBatchAppliesValidChain(t *testing.T) {
	m := ledger.NewManager()
	e := NewEngine(m, DefaultConfig(), nil)

	first := validNext(m)
	n, err := e.IngestBatch([]ledger.Ledger{first})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, first, m.Current())
}

func TestIngestBatchStopsAndCountsOnParentHashMismatch(t *testing.T) {
	m := ledger.NewManager()
	e := NewEngine(m, DefaultConfig(), nil)

	bad := ledger.Ledger{Sequence: m.Current().Sequence + 1}
	bad.Hash = bad.ComputeHash()
	n, err := e.IngestBatch([]ledger.Ledger{bad})
	require.Error(t, err)
	require.Equal(t, 0, n)
	require.Equal(t, uint64(1), e.ReorgRetryCount())
}

func TestIngestBatchLogsHashMismatchButDoesNotBlock(t *testing.T) {
	m := ledger.NewManager()
	e := NewEngine(m, DefaultConfig(), nil)

	next := ledger.Ledger{Sequence: m.Current().Sequence + 1, ParentHash: m.Current().Hash}
	// Hash deliberately left as the zero value: wrong, but must not block.
	n, err := e.IngestBatch([]ledger.Ledger{next})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, uint64(1), e.HashMismatchCount())
}

func TestIngestBatchRespectsBatchLimit(t *testing.T) {
	m := ledger.NewManager()
	cfg := Config{BatchLimit: 1}
	e := NewEngine(m, cfg, nil)

	first := validNext(m)
	second := ledger.Ledger{Sequence: first.Sequence + 1, ParentHash: first.Hash}
	second.Hash = second.ComputeHash()

	n, err := e.IngestBatch([]ledger.Ledger{first, second})
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
