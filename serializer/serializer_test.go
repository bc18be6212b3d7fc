package serializer

import (
	"encoding/hex"
	"testing"

	"github.com/SMC17/rippled-zig-sub000/types"
	"github.com/SMC17/rippled-zig-sub000/xrpcrypto"
	"github.com/stretchr/testify/require"
)

func TestCanonicalVectorBasic(t *testing.T) {
	s := New()
	s.AddUInt64(8, 10)
	s.AddUInt16(2, 0)
	s.AddUInt32(4, 1)

	got := s.Finish()
	want, err := hex.DecodeString("120000240000000168000000000000000a")
	require.NoError(t, err)
	require.Equal(t, want, got, "insertion order must not affect canonical bytes")
}

func TestCanonicalVectorInsertionOrderIndependence(t *testing.T) {
	a := New().AddUInt64(8, 10).AddUInt16(2, 0).AddUInt32(4, 1).Finish()
	b := New().AddUInt32(4, 1).AddUInt16(2, 0).AddUInt64(8, 10).Finish()
	c := New().AddUInt16(2, 0).AddUInt64(8, 10).AddUInt32(4, 1).Finish()
	require.Equal(t, a, b)
	require.Equal(t, a, c)
}

func TestCanonicalVectorWithAccountID(t *testing.T) {
	var acct types.AccountID
	for i := range acct {
		acct[i] = byte(i + 1)
	}
	s := New().AddUInt64(8, 10).AddUInt16(2, 0).AddUInt32(4, 1).AddAccountID(1, acct)

	got := s.Finish()
	want, err := hex.DecodeString("120000240000000168000000000000000a810102030405060708090a0b0c0d0e0f1011121314")
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestVLFraming192Bytes(t *testing.T) {
	payload := make([]byte, 192)
	framed := EncodeVL(payload)
	require.Equal(t, byte(0xC0), framed[0])
	require.Len(t, framed, 193)

	s := New().AddVL(3, payload)
	out := s.Finish()
	require.Equal(t, byte(0x73), out[0])
	require.Equal(t, byte(0xC0), out[1])
	require.Len(t, out, 194)
}

func TestVLFraming193Bytes(t *testing.T) {
	payload := make([]byte, 193)
	framed := EncodeVL(payload)
	require.Equal(t, byte(0xC1), framed[0])
	require.Equal(t, byte(0x00), framed[1])
	require.Len(t, framed, 195)

	s := New().AddVL(3, payload)
	out := s.Finish()
	require.Equal(t, byte(0x73), out[0])
	require.Equal(t, byte(0xC1), out[1])
	require.Equal(t, byte(0x00), out[2])
	require.Len(t, out, 196)
}

func TestVLFramingBoundaries(t *testing.T) {
	// length == 0 is a single zero length byte.
	require.Equal(t, []byte{0x00}, EncodeVL(nil))

	// Upper edge of the second tier.
	payload := make([]byte, 12480)
	framed := EncodeVL(payload)
	require.Len(t, framed, 2+12480)

	// Lower edge of the third tier.
	payload3 := make([]byte, 12481)
	framed3 := EncodeVL(payload3)
	require.Len(t, framed3, 3+12481)
	require.Equal(t, byte(241), framed3[0])
	require.Equal(t, byte(0), framed3[1])
	require.Equal(t, byte(0), framed3[2])
}

func TestFinishHashMatchesSha512Half(t *testing.T) {
	s := New().AddUInt64(8, 10).AddUInt16(2, 0).AddUInt32(4, 1)
	bytes := s.Finish()
	require.Equal(t, xrpcrypto.Sha512Half(bytes), s.FinishHash())
}
