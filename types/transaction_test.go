package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTxTypeName(t *testing.T) {
	cases := []struct {
		tt   TxType
		want string
	}{
		{TxPayment, "Payment"},
		{TxOfferCreate, "OfferCreate"},
		{TxOfferCancel, "OfferCancel"},
		{TxTrustSet, "TrustSet"},
		{TxAccountSet, "AccountSet"},
		{TxType(0xFFFF), ""},
	}
	for _, c := range cases {
		require.Equal(t, c.want, c.tt.Name())
		require.Equal(t, c.want != "", c.tt.Known())
	}
}

func TestAmountIsPositive(t *testing.T) {
	require.True(t, XRPAmount(1).IsPositive())
	require.False(t, XRPAmount(0).IsPositive())

	var currency CurrencyCode
	issuer := AccountID{1}
	require.True(t, IOUAmount(currency, issuer, IOUValue{Mantissa: 1, Exponent: 0}).IsPositive())
	require.False(t, IOUAmount(currency, issuer, IOUValue{Mantissa: 0}).IsPositive())
	require.False(t, IOUAmount(currency, issuer, IOUValue{Mantissa: 1, Negative: true}).IsPositive())
}

func TestAccountRootWithinSupplyBound(t *testing.T) {
	ok := AccountRoot{Balance: MaxXRP}
	require.True(t, ok.WithinSupplyBound())

	bad := AccountRoot{Balance: MaxXRP + 1}
	require.False(t, bad.WithinSupplyBound())
}

func TestAccountIDFromHex(t *testing.T) {
	id, err := AccountIDFromHex("0102030405060708090a0b0c0d0e0f1011121314")
	require.NoError(t, err)
	require.Equal(t, byte(0x01), id[0])
	require.Equal(t, byte(0x14), id[19])

	_, err = AccountIDFromHex("zz")
	require.Error(t, err)

	_, err = AccountIDFromHex("0102")
	require.Error(t, err)
}

func TestEngineResultString(t *testing.T) {
	cases := map[TransactionResult]string{
		TesSuccess:    "tesSUCCESS",
		TelLocalError: "telLOCAL_ERROR",
		TemMalformed:  "temMALFORMED",
		TerRetry:      "terRETRY",
		TecClaim:      "tecCLAIM",
		TefFailure:    "tefFAILURE",
	}
	for result, want := range cases {
		require.Equal(t, want, result.EngineResultString())
	}
	require.True(t, TesSuccess.IsSuccess())
	require.False(t, TerRetry.IsSuccess())
}
