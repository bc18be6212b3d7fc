package types

// TxType enumerates the transaction shapes this daemon understands. Values
// match the wire tx_type codes used by the submit decoder (§4.5).
type TxType uint16

const (
	TxPayment      TxType = 0
	TxOfferCreate  TxType = 7
	TxOfferCancel  TxType = 8
	TxTrustSet     TxType = 20
	TxAccountSet   TxType = 3
)

// Name returns the canonical transaction-type name, or "" if tt is unknown.
func (tt TxType) Name() string {
	switch tt {
	case TxPayment:
		return "Payment"
	case TxOfferCreate:
		return "OfferCreate"
	case TxOfferCancel:
		return "OfferCancel"
	case TxTrustSet:
		return "TrustSet"
	case TxAccountSet:
		return "AccountSet"
	default:
		return ""
	}
}

// Known reports whether tt maps to a recognized transaction type.
func (tt TxType) Known() bool {
	return tt.Name() != ""
}

// Signer is one entry of a multi-signing list.
type Signer struct {
	Account       AccountID
	SigningPubKey [33]byte
	TxnSignature  []byte
}

// Transaction is the common envelope from §3, carrying the type-specific
// payload in the pointer fields appropriate to TxType. At most one of the
// type-specific payload pointers is set, matching Type; the submit decoder
// sets only Payment and leaves every pointer nil for other types.
type Transaction struct {
	Type          TxType
	Account       AccountID
	Fee           Drops
	Sequence      uint32
	SigningPubKey *[33]byte
	TxnSignature  []byte
	Signers       []Signer

	Payment     *PaymentData
	OfferCreate *OfferCreateData
	OfferCancel *OfferCancelData
	TrustSet    *TrustSetData
	AccountSet  *AccountSetData
}

// PaymentData carries the Payment-specific fields.
type PaymentData struct {
	Destination AccountID
	Amount      Amount
}

// OfferCreateData carries the OfferCreate-specific fields.
type OfferCreateData struct {
	TakerGets  Amount
	TakerPays  Amount
	Expiration *uint32
}

// OfferCancelData carries the OfferCancel-specific fields.
type OfferCancelData struct {
	OfferSequence uint32
}

// TrustSetData carries the TrustSet-specific fields.
type TrustSetData struct {
	LimitAmount Amount
}

// AccountSetData carries the AccountSet-specific fields.
type AccountSetData struct {
	SetFlag   *uint32
	ClearFlag *uint32
}
