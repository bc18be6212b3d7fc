package txprocessor

import (
	"github.com/SMC17/rippled-zig-sub000/ledger"
	"github.com/SMC17/rippled-zig-sub000/types"
)

// Apply mutates accounts to reflect tx's effect, per §4.5's apply steps:
// every check runs before any field is written, so a rejected transaction
// leaves accounts byte-for-byte unchanged (the mutation-safety invariant).
// Payment gets the full destination-credit treatment; every other known
// TxType gets the non-Payment rule (sequence += 1, balance -= fee only).
func Apply(accounts *ledger.AccountState, tx types.Transaction) error {
	if !tx.Type.Known() {
		return submitErr(CodeUnsupportedTransactionType, "unknown tx_type")
	}

	sender, ok := accounts.Get(tx.Account)
	if !ok {
		return submitErr(CodeAccountNotFound, tx.Account.String())
	}

	if tx.Type != types.TxPayment {
		if sender.Balance < tx.Fee {
			return submitErr(CodeSubmitInsufficientFeeBalance, "balance below fee")
		}
		sender.Sequence++
		sender.Balance -= tx.Fee
		accounts.Put(sender)
		return nil
	}

	if tx.Payment == nil {
		return submitErr(CodeInvalidTxBlob, "payment transaction missing payment data")
	}

	dest, ok := accounts.Get(tx.Payment.Destination)
	if !ok {
		return submitErr(CodeDestinationAccountNotFound, tx.Payment.Destination.String())
	}

	amount := tx.Payment.Amount
	if amount.Kind != types.AmountXRP || !amount.IsPositive() {
		return submitErr(CodeInvalidPaymentAmount, "payment amount must be a positive XRP amount")
	}

	total := uint64(tx.Fee) + uint64(amount.Drops)
	if uint64(sender.Balance) < total {
		return submitErr(CodeInsufficientPaymentBalance, "balance below fee plus payment amount")
	}

	sender.Balance -= types.Drops(total)
	sender.Sequence++

	if tx.Account == tx.Payment.Destination {
		sender.Balance += amount.Drops
		accounts.Put(sender)
		return nil
	}

	dest.Balance += amount.Drops
	accounts.Put(sender)
	accounts.Put(dest)
	return nil
}

// ApplyAll applies each transaction in turn, stopping at and returning the
// first error. Transactions already applied before the failing one remain
// applied: callers that need all-or-nothing semantics across a batch should
// snapshot accounts first via AccountState.Snapshot.
func ApplyAll(accounts *ledger.AccountState, txs []types.Transaction) error {
	for _, tx := range txs {
		if err := Apply(accounts, tx); err != nil {
			return err
		}
	}
	return nil
}
