package types

import "fmt"

// CurrencyCode is the 20-byte currency code used by IOU amounts.
type CurrencyCode [20]byte

// AmountKind tags the variant held by an Amount.
type AmountKind uint8

const (
	// AmountXRP holds a native Drops value.
	AmountXRP AmountKind = iota
	// AmountIOU holds an issued-currency value.
	AmountIOU
)

// IOUValue is a signed decimal value, represented as a sign plus a base-10
// mantissa/exponent pair. Real XRPL uses a packed 64-bit IEEE-754-like
// encoding; this daemon only needs enough fidelity to compare signs and
// render the amount, so the decomposed form is kept explicit.
type IOUValue struct {
	Negative bool
	Mantissa uint64
	Exponent int8
}

// IsZero reports whether the value is exactly zero.
func (v IOUValue) IsZero() bool {
	return v.Mantissa == 0
}

// IsPositive reports whether the value is strictly greater than zero.
func (v IOUValue) IsPositive() bool {
	return !v.Negative && v.Mantissa != 0
}

// Amount is a tagged union of a native XRP amount and an issued-currency
// amount, matching §3's { XRP(drops), IOU{...} } sum type. Callers must
// switch on Kind before reading the variant-specific fields; reading the
// wrong variant's fields returns the zero value rather than panicking.
type Amount struct {
	Kind     AmountKind
	Drops    Drops
	Currency CurrencyCode
	Issuer   AccountID
	Value    IOUValue
}

// XRPAmount constructs a native-currency Amount.
func XRPAmount(drops Drops) Amount {
	return Amount{Kind: AmountXRP, Drops: drops}
}

// IOUAmount constructs an issued-currency Amount.
func IOUAmount(currency CurrencyCode, issuer AccountID, value IOUValue) Amount {
	return Amount{Kind: AmountIOU, Currency: currency, Issuer: issuer, Value: value}
}

// IsPositive is the checked positivity predicate required by §3: an XRP
// amount is positive iff its drops are nonzero, an IOU amount is positive
// iff its decimal value is strictly greater than zero.
func (a Amount) IsPositive() bool {
	switch a.Kind {
	case AmountXRP:
		return a.Drops > 0
	case AmountIOU:
		return a.Value.IsPositive()
	default:
		return false
	}
}

func (a Amount) String() string {
	switch a.Kind {
	case AmountXRP:
		return fmt.Sprintf("%d drops", a.Drops)
	case AmountIOU:
		sign := ""
		if a.Value.Negative {
			sign = "-"
		}
		return fmt.Sprintf("%s%d*10^%d/%s/%s", sign, a.Value.Mantissa, a.Value.Exponent, a.Currency, a.Issuer)
	default:
		return "<invalid amount>"
	}
}
