package txprocessor

import "fmt"

// SubmitError enumerates the ways a submit blob or a validated transaction
// can be rejected before application, following the teacher's TxError idiom
// (consensus/errors.go) of a stable Code plus a human Msg.
type SubmitError struct {
	Code string
	Msg  string
}

func (e *SubmitError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

const (
	CodeInvalidTxBlob                = "InvalidTxBlob"
	CodeUnsupportedTransactionType    = "UnsupportedTransactionType"
	CodeDestinationAccountNotFound    = "DestinationAccountNotFound"
	CodeInvalidPaymentAmount          = "InvalidPaymentAmount"
	CodeInsufficientPaymentBalance    = "InsufficientPaymentBalance"
	CodeSubmitFeeTooLow               = "SubmitFeeTooLow"
	CodeSubmitSequenceMismatch        = "SubmitSequenceMismatch"
	CodeSubmitInsufficientFeeBalance  = "SubmitInsufficientFeeBalance"
	CodeAccountNotFound               = "AccountNotFound"
)

func submitErr(code, msg string) error {
	return &SubmitError{Code: code, Msg: msg}
}
