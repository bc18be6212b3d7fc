package consensus

import (
	"time"

	"github.com/SMC17/rippled-zig-sub000/ledger"
	"github.com/SMC17/rippled-zig-sub000/types"
	"github.com/SMC17/rippled-zig-sub000/xrpcrypto"
)

// Config is ConsensusConfig from §3, with the documented defaults.
type Config struct {
	FinalThreshold       float64
	OpenPhaseTicks       uint32
	OpenPhaseMs          int64
	EstablishPhaseTicks  uint32
	ConsensusRoundTicks  uint32
}

// DefaultConfig returns the spec-mandated defaults: 0.80, 20, 2000, 5, 5.
func DefaultConfig() Config {
	return Config{
		FinalThreshold:      0.80,
		OpenPhaseTicks:      20,
		OpenPhaseMs:         2000,
		EstablishPhaseTicks: 5,
		ConsensusRoundTicks: 5,
	}
}

// State is the coarse round state from §4.6.
type State int

const (
	StateOpen State = iota
	StateEstablish
	StateAccepted
	StateValidated
)

// PhaseKind enumerates the phase union from §4.6.
type PhaseKind int

const (
	PhaseOpen PhaseKind = iota
	PhaseEstablish
	PhaseConsensus50
	PhaseConsensus60
	PhaseConsensus70
	PhaseConsensus80
	PhaseValidation
)

// Phase is a phase-union value paired with its tick counter.
type Phase struct {
	Kind PhaseKind
	Tick uint32
}

// RoundResult is returned by FinalizeRound.
type RoundResult struct {
	RoundNumber      uint32
	Success          bool
	TransactionCount int
	DurationMs       int64
	FinalLedgerSeq   uint32
}

// nowMs is a seam for deterministic testing, mirroring ledger's now hook.
var nowMs = func() int64 { return time.Now().UnixMilli() }

// Engine drives one federated consensus round at a time against a shared
// ledger.Manager. It owns its UNL and current proposal set exclusively; the
// ledger manager is a collaborator borrowed mutably only in FinalizeRound,
// per §3's ownership design.
type Engine struct {
	config Config
	unl    *UNL
	manager *ledger.Manager

	state       State
	phase       Phase
	roundNumber uint32
	roundStartMs int64

	proposals   map[[32]byte]Proposal
	ourPosition Position
	candidates  []ledger.CandidateTx
}

// NewEngine returns an Engine bound to manager and unl, using config.
func NewEngine(manager *ledger.Manager, unl *UNL, config Config) *Engine {
	return &Engine{
		config:    config,
		unl:       unl,
		manager:   manager,
		proposals: make(map[[32]byte]Proposal),
	}
}

// State returns the engine's current coarse state.
func (e *Engine) State() State { return e.state }

// Phase returns the engine's current phase.
func (e *Engine) Phase() Phase { return e.phase }

// RoundNumber returns the number of the round currently (or most recently)
// in progress.
func (e *Engine) RoundNumber() uint32 { return e.roundNumber }

// candidateTxHash hashes a candidate transaction for inclusion in a
// position's transaction list, using the same leaf scheme as the ledger
// package's transaction merkle root.
func candidateTxHash(tx ledger.CandidateTx) types.Hash256 {
	buf := make([]byte, 0, 20+4+8)
	buf = append(buf, tx.Account[:]...)
	seqBuf := [4]byte{byte(tx.Sequence >> 24), byte(tx.Sequence >> 16), byte(tx.Sequence >> 8), byte(tx.Sequence)}
	buf = append(buf, seqBuf[:]...)
	fee := uint64(tx.Fee)
	feeBuf := [8]byte{byte(fee >> 56), byte(fee >> 48), byte(fee >> 40), byte(fee >> 32), byte(fee >> 24), byte(fee >> 16), byte(fee >> 8), byte(fee)}
	buf = append(buf, feeBuf[:]...)
	return xrpcrypto.Sha512Half(buf)
}

// StartRound implements §4.6's startRound(candidates): it advances the
// round number, resets state/phase to open(0), records the wall-clock
// round start, clears proposals, and sets our_position from the current
// ledger tip and the supplied candidate set.
func (e *Engine) StartRound(candidates []ledger.CandidateTx) {
	e.roundNumber++
	e.state = StateOpen
	e.phase = Phase{Kind: PhaseOpen, Tick: 0}
	e.roundStartMs = nowMs()
	e.proposals = make(map[[32]byte]Proposal)
	e.candidates = candidates

	hashes := make([]types.Hash256, len(candidates))
	for i, c := range candidates {
		hashes[i] = candidateTxHash(c)
	}
	e.ourPosition = Position{
		PriorLedger:  e.manager.Current().Hash,
		Transactions: hashes,
		CloseTime:    time.Now().Unix(),
	}
}

// ProcessProposal implements §4.6's processProposal(p): it rejects
// malformed or untrusted proposals, otherwise keeping the most recent
// proposal per validator.
func (e *Engine) ProcessProposal(p Proposal) error {
	if p.LedgerSeq == 0 || len(p.Position.Transactions) > maxProposalTransactions {
		return roundErr(ErrInvalidProposal, "ledger_seq zero or transaction count exceeds sanity floor")
	}
	if !e.unl.IsTrusted(p.ValidatorID) {
		return roundErr(ErrUntrustedValidator, "validator not present in UNL as trusted")
	}
	e.proposals[p.ValidatorID] = p
	return nil
}

// agreement implements §4.6's agreement formula: the fraction of (trusted
// UNL members agreeing with our_position.prior_ledger, plus ourselves) over
// (|UNL| + 1). An empty UNL defines agreement as 1.0.
func (e *Engine) agreement() float64 {
	trusted := e.unl.TrustedCount()
	if trusted == 0 {
		return 1.0
	}
	matching := 0
	for _, p := range e.proposals {
		if p.Position.PriorLedger == e.ourPosition.PriorLedger {
			matching++
		}
	}
	return float64(matching+1) / float64(trusted+1)
}

func thresholdFor(kind PhaseKind) float64 {
	switch kind {
	case PhaseConsensus50:
		return 0.50
	case PhaseConsensus60:
		return 0.60
	case PhaseConsensus70:
		return 0.70
	case PhaseConsensus80:
		return 0.80
	default:
		return 0
	}
}

func nextConsensusPhase(kind PhaseKind) PhaseKind {
	switch kind {
	case PhaseConsensus50:
		return PhaseConsensus60
	case PhaseConsensus60:
		return PhaseConsensus70
	case PhaseConsensus70:
		return PhaseConsensus80
	default:
		return PhaseValidation
	}
}

// RunRoundStep implements §4.6's runRoundStep(): it advances the phase by
// one tick and reports whether the round has reached validation.
func (e *Engine) RunRoundStep() bool {
	switch e.phase.Kind {
	case PhaseOpen:
		e.phase.Tick++
		elapsed := nowMs() - e.roundStartMs
		if e.phase.Tick >= e.config.OpenPhaseTicks || elapsed > e.config.OpenPhaseMs {
			e.phase = Phase{Kind: PhaseEstablish, Tick: 0}
		}
		return false

	case PhaseEstablish:
		e.phase.Tick++
		if e.phase.Tick >= e.config.EstablishPhaseTicks {
			e.state = StateEstablish
			e.phase = Phase{Kind: PhaseConsensus50, Tick: 0}
		}
		return false

	case PhaseConsensus50, PhaseConsensus60, PhaseConsensus70, PhaseConsensus80:
		e.phase.Tick++
		agreement := e.agreement()
		threshold := thresholdFor(e.phase.Kind)
		if e.phase.Tick < e.config.ConsensusRoundTicks || agreement < threshold {
			return false
		}
		if e.phase.Kind == PhaseConsensus80 {
			if agreement >= e.config.FinalThreshold {
				e.state = StateAccepted
				e.phase = Phase{Kind: PhaseValidation, Tick: 0}
				return true
			}
			return false
		}
		e.phase = Phase{Kind: nextConsensusPhase(e.phase.Kind), Tick: 0}
		return false

	case PhaseValidation:
		return true

	default:
		return false
	}
}

// FinalizeRound implements §4.6's finalizeRound(): it closes the ledger
// with this round's candidate transaction set (as passed to StartRound),
// marks the round validated, and returns the round summary.
func (e *Engine) FinalizeRound() RoundResult {
	final := e.manager.CloseLedger(e.candidates)
	e.state = StateValidated
	return RoundResult{
		RoundNumber:      e.roundNumber,
		Success:          true,
		TransactionCount: len(e.candidates),
		DurationMs:       nowMs() - e.roundStartMs,
		FinalLedgerSeq:   final.Sequence,
	}
}
