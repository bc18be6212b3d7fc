// Package ledger implements the linear ledger chain and in-memory account
// map described in spec §4.3: a Manager owns every appended Ledger by
// value, chained by parent hash, and an AccountState maps AccountID to
// AccountRoot for the transaction processor and RPC layer to share under
// the single-threaded scheduling discipline described in spec §5.
package ledger

import (
	"encoding/binary"

	"github.com/SMC17/rippled-zig-sub000/types"
	"github.com/SMC17/rippled-zig-sub000/xrpcrypto"
)

// Ledger is an immutable snapshot header, chained to its parent by hash.
type Ledger struct {
	Sequence             uint32
	Hash                 types.Hash256
	ParentHash           types.Hash256
	CloseTime            int64
	CloseTimeResolution  uint32
	TotalCoins           types.Drops
	AccountStateHash     types.Hash256
	TransactionHash      types.Hash256
	CloseFlags           uint32
	ParentCloseTime      int64
}

// ComputeHash returns SHA-512-Half of the big-endian concatenation
// sequence(4) ‖ parent_hash(32) ‖ close_time(8, signed) ‖
// account_state_hash(32) ‖ transaction_hash(32) ‖ close_flags(4), per §4.3.
// total_coins is deliberately excluded from the hash.
func (l Ledger) ComputeHash() types.Hash256 {
	buf := make([]byte, 0, 4+32+8+32+32+4)

	seqBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(seqBuf, l.Sequence)
	buf = append(buf, seqBuf...)

	buf = append(buf, l.ParentHash[:]...)

	closeTimeBuf := make([]byte, 8)
	binary.BigEndian.PutUint64(closeTimeBuf, uint64(l.CloseTime))
	buf = append(buf, closeTimeBuf...)

	buf = append(buf, l.AccountStateHash[:]...)
	buf = append(buf, l.TransactionHash[:]...)

	flagsBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(flagsBuf, l.CloseFlags)
	buf = append(buf, flagsBuf...)

	return xrpcrypto.Sha512Half(buf)
}

// Genesis returns the genesis ledger: sequence 1, both hashes zero, and
// total_coins equal to the full MAX_XRP supply, per §3's invariant.
func Genesis() Ledger {
	return Ledger{
		Sequence:   1,
		TotalCoins: types.MaxXRP,
	}
}
