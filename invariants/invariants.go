// Package invariants implements the pure post-hoc checks from §4.8: each
// one inspects ledger/account-state snapshots and reports a structured
// Violation rather than mutating anything, so callers can surface them as
// JSON artifacts for offline analysis (or panic in debug builds).
package invariants

import (
	"fmt"

	"github.com/SMC17/rippled-zig-sub000/ledger"
	"github.com/SMC17/rippled-zig-sub000/types"
)

// Violation is the structured failure record required by §4.8.
type Violation struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Name, v.Message)
}

// BalanceConservation checks sum(balances) + feesDestroyed == expectedTotal.
// The addition is wrapping; the check treats the wrapped result as exact,
// matching §4.8's documented tolerance.
func BalanceConservation(accounts *ledger.AccountState, feesDestroyed types.Drops, expectedTotal types.Drops) *Violation {
	total := accounts.SumBalances() + feesDestroyed
	if total != expectedTotal {
		return &Violation{
			Name:    "balance_conservation",
			Message: fmt.Sprintf("sum(balances)+fees_destroyed=%d, expected=%d", total, expectedTotal),
		}
	}
	return nil
}

// SequenceMonotonicity checks that every account present in both before and
// after has a non-decreasing sequence number.
func SequenceMonotonicity(before, after map[types.AccountID]types.AccountRoot) *Violation {
	for id, b := range before {
		a, ok := after[id]
		if !ok {
			continue
		}
		if a.Sequence < b.Sequence {
			return &Violation{
				Name:    "sequence_monotonicity",
				Message: fmt.Sprintf("account %s: sequence decreased from %d to %d", id, b.Sequence, a.Sequence),
			}
		}
	}
	return nil
}

// LedgerSequenceMonotonicity checks that newSeq is strictly greater than
// prevSeq.
func LedgerSequenceMonotonicity(prevSeq, newSeq uint32) *Violation {
	if newSeq <= prevSeq {
		return &Violation{
			Name:    "ledger_sequence_monotonicity",
			Message: fmt.Sprintf("new sequence %d is not strictly greater than previous %d", newSeq, prevSeq),
		}
	}
	return nil
}

// TotalCoinsWithinBound checks that l.TotalCoins respects MaxXRP.
func TotalCoinsWithinBound(l ledger.Ledger) *Violation {
	if l.TotalCoins > types.MaxXRP {
		return &Violation{
			Name:    "total_coins_within_bound",
			Message: fmt.Sprintf("total_coins %d exceeds MAX_XRP %d", l.TotalCoins, types.MaxXRP),
		}
	}
	return nil
}

// CheckAll runs every invariant that can be evaluated from a single ledger
// plus before/after account snapshots, returning every violation found.
func CheckAll(prev, next ledger.Ledger, before, after map[types.AccountID]types.AccountRoot, feesDestroyed types.Drops, accounts *ledger.AccountState) []Violation {
	var out []Violation
	if v := LedgerSequenceMonotonicity(prev.Sequence, next.Sequence); v != nil {
		out = append(out, *v)
	}
	if v := TotalCoinsWithinBound(next); v != nil {
		out = append(out, *v)
	}
	if v := SequenceMonotonicity(before, after); v != nil {
		out = append(out, *v)
	}
	if v := BalanceConservation(accounts, feesDestroyed, next.TotalCoins); v != nil {
		out = append(out, *v)
	}
	return out
}
