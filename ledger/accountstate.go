package ledger

import "github.com/SMC17/rippled-zig-sub000/types"

// AccountState is a mapping AccountID -> AccountRoot. Insertion order is
// irrelevant; lookup is by key, matching §4.3.
type AccountState struct {
	accounts map[types.AccountID]types.AccountRoot
}

// NewAccountState returns an empty AccountState.
func NewAccountState() *AccountState {
	return &AccountState{accounts: make(map[types.AccountID]types.AccountRoot)}
}

// Get returns the account root for id and whether it was present.
func (s *AccountState) Get(id types.AccountID) (types.AccountRoot, bool) {
	root, ok := s.accounts[id]
	return root, ok
}

// Put inserts or replaces the account root keyed by root.Account.
func (s *AccountState) Put(root types.AccountRoot) {
	s.accounts[root.Account] = root
}

// Contains reports whether id is present in the state.
func (s *AccountState) Contains(id types.AccountID) bool {
	_, ok := s.accounts[id]
	return ok
}

// Len returns the number of accounts tracked.
func (s *AccountState) Len() int {
	return len(s.accounts)
}

// SumBalances returns the wrapping sum of every tracked balance, used by
// the balance-conservation invariant (§4.8).
func (s *AccountState) SumBalances() types.Drops {
	var total types.Drops
	for _, root := range s.accounts {
		total += root.Balance // wraps on overflow, matching spec's "addition is wrapping"
	}
	return total
}

// ForEach calls fn once per account in the state. Iteration order is
// unspecified, matching the map's native order.
func (s *AccountState) ForEach(fn func(types.AccountRoot)) {
	for _, root := range s.accounts {
		fn(root)
	}
}

// Snapshot returns a shallow copy of the current account map, suitable for
// before/after invariant comparisons (§4.8's sequence-monotonicity check).
func (s *AccountState) Snapshot() map[types.AccountID]types.AccountRoot {
	out := make(map[types.AccountID]types.AccountRoot, len(s.accounts))
	for k, v := range s.accounts {
		out[k] = v
	}
	return out
}
