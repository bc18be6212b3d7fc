package consensus

import (
	"testing"

	"github.com/SMC17/rippled-zig-sub000/ledger"
	"github.com/stretchr/testify/require"
)

func withFixedClock(t *testing.T, start int64) func(deltaMs int64) {
	t.Helper()
	cur := start
	old := nowMs
	nowMs = func() int64 { return cur }
	t.Cleanup(func() { nowMs = old })
	return func(deltaMs int64) { cur += deltaMs }
}

func TestDefaultConfigMatchesSpecDefaults(t *testing.T) {
	c := DefaultConfig()
	require.Equal(t, 0.80, c.FinalThreshold)
	require.Equal(t, uint32(20), c.OpenPhaseTicks)
	require.Equal(t, int64(2000), c.OpenPhaseMs)
	require.Equal(t, uint32(5), c.EstablishPhaseTicks)
	require.Equal(t, uint32(5), c.ConsensusRoundTicks)
}

func TestAgreementIsOneWhenUNLEmpty(t *testing.T) {
	m := ledger.NewManager()
	e := NewEngine(m, NewUNL(), DefaultConfig())
	e.StartRound(nil)
	require.Equal(t, 1.0, e.agreement())
}

func TestProcessProposalRejectsUntrustedValidator(t *testing.T) {
	m := ledger.NewManager()
	unl := NewUNL()
	e := NewEngine(m, unl, DefaultConfig())
	e.StartRound(nil)

	err := e.ProcessProposal(Proposal{ValidatorID: [32]byte{1}, LedgerSeq: 2})
	require.Error(t, err)
	var re *RoundError
	require.ErrorAs(t, err, &re)
	require.Equal(t, ErrUntrustedValidator, re.Code)
}

func TestProcessProposalRejectsInvalidLedgerSeq(t *testing.T) {
	m := ledger.NewManager()
	unl := NewUNL()
	unl.Add(ValidatorInfo{NodeID: [32]byte{1}, IsTrusted: true})
	e := NewEngine(m, unl, DefaultConfig())
	e.StartRound(nil)

	err := e.ProcessProposal(Proposal{ValidatorID: [32]byte{1}, LedgerSeq: 0})
	require.Error(t, err)
	var re *RoundError
	require.ErrorAs(t, err, &re)
	require.Equal(t, ErrInvalidProposal, re.Code)
}

func TestProcessProposalKeepsMostRecentPerValidator(t *testing.T) {
	m := ledger.NewManager()
	unl := NewUNL()
	unl.Add(ValidatorInfo{NodeID: [32]byte{1}, IsTrusted: true})
	e := NewEngine(m, unl, DefaultConfig())
	e.StartRound(nil)

	require.NoError(t, e.ProcessProposal(Proposal{ValidatorID: [32]byte{1}, LedgerSeq: 2, Position: Position{PriorLedger: [32]byte{9}}}))
	require.NoError(t, e.ProcessProposal(Proposal{ValidatorID: [32]byte{1}, LedgerSeq: 2, Position: Position{PriorLedger: e.ourPosition.PriorLedger}}))
	require.Len(t, e.proposals, 1)
	require.Equal(t, e.ourPosition.PriorLedger, e.proposals[[32]byte{1}].Position.PriorLedger)
}

func TestRoundAdvancesThroughPhasesToValidationWithEmptyUNL(t *testing.T) {
	advance := withFixedClock(t, 0)
	m := ledger.NewManager()
	cfg := DefaultConfig()
	e := NewEngine(m, NewUNL(), cfg)
	e.StartRound(nil)

	var done bool
	for i := 0; i < 1000 && !done; i++ {
		advance(1)
		done = e.RunRoundStep()
	}
	require.True(t, done)
	require.Equal(t, PhaseValidation, e.Phase().Kind)
	require.Equal(t, StateAccepted, e.State())
}

func TestOpenPhaseWallClockOverride(t *testing.T) {
	advance := withFixedClock(t, 0)
	m := ledger.NewManager()
	cfg := DefaultConfig()
	cfg.OpenPhaseTicks = 1_000_000 // effectively disable tick-based transition
	e := NewEngine(m, NewUNL(), cfg)
	e.StartRound(nil)

	advance(cfg.OpenPhaseMs + 1)
	e.RunRoundStep()
	require.Equal(t, PhaseEstablish, e.Phase().Kind)
}

func TestFinalizeRoundClosesLedgerWithEmptyTransactionSet(t *testing.T) {
	m := ledger.NewManager()
	e := NewEngine(m, NewUNL(), DefaultConfig())
	e.StartRound(nil)
	before := m.Current().Sequence

	result := e.FinalizeRound()
	require.True(t, result.Success)
	require.Equal(t, 0, result.TransactionCount)
	require.Equal(t, before+1, result.FinalLedgerSeq)
	require.Equal(t, StateValidated, e.State())
}

func TestFinalizeRoundIncludesStartRoundCandidates(t *testing.T) {
	m := ledger.NewManager()
	e := NewEngine(m, NewUNL(), DefaultConfig())
	candidates := []ledger.CandidateTx{{Account: [20]byte{1}, Sequence: 1, Fee: 10}}
	e.StartRound(candidates)

	result := e.FinalizeRound()
	require.Equal(t, 1, result.TransactionCount)

	closed, ok := m.ByIndex(result.FinalLedgerSeq)
	require.True(t, ok)
	require.Equal(t, ledger.TransactionMerkleRoot(candidates), closed.TransactionHash)
}
