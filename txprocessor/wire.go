package txprocessor

import (
	"encoding/binary"

	"github.com/SMC17/rippled-zig-sub000/types"
)

// commonHeaderLen is tx_type(2) ‖ account(20) ‖ fee(8) ‖ sequence(4).
const commonHeaderLen = 2 + 20 + 8 + 4

// paymentBlobLen is commonHeaderLen plus destination(20) ‖ amount drops(8).
const paymentBlobLen = commonHeaderLen + 20 + 8

// DecodeSubmitBlob parses the raw submit wire format fixed by §4.5. A
// tx_type that doesn't map to a known TransactionType is rejected with
// UnsupportedTransactionType. Payment decodes the extra destination/amount
// fields; every other known type decodes as a common-header-only blob.
func DecodeSubmitBlob(blob []byte) (types.Transaction, error) {
	if len(blob) < commonHeaderLen {
		return types.Transaction{}, submitErr(CodeInvalidTxBlob, "blob shorter than common header")
	}

	txType := types.TxType(binary.BigEndian.Uint16(blob[0:2]))

	var account types.AccountID
	copy(account[:], blob[2:22])

	fee := types.Drops(binary.BigEndian.Uint64(blob[22:30]))
	sequence := binary.BigEndian.Uint32(blob[30:34])

	if !txType.Known() {
		return types.Transaction{}, submitErr(CodeUnsupportedTransactionType, "unknown tx_type")
	}

	if txType != types.TxPayment {
		if len(blob) != commonHeaderLen {
			return types.Transaction{}, submitErr(CodeInvalidTxBlob, "non-payment blob must be exactly 34 bytes")
		}
		return types.Transaction{
			Type:     txType,
			Account:  account,
			Fee:      fee,
			Sequence: sequence,
		}, nil
	}

	if len(blob) != paymentBlobLen {
		return types.Transaction{}, submitErr(CodeInvalidTxBlob, "payment blob must be exactly 62 bytes")
	}

	var destination types.AccountID
	copy(destination[:], blob[34:54])
	drops := types.Drops(binary.BigEndian.Uint64(blob[54:62]))

	return types.Transaction{
		Type:     types.TxPayment,
		Account:  account,
		Fee:      fee,
		Sequence: sequence,
		Payment: &types.PaymentData{
			Destination: destination,
			Amount:      types.XRPAmount(drops),
		},
	}, nil
}
