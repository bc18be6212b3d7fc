// Package serializer implements the canonical binary encoding described in
// spec §4.1: fields are added as (type_code, field_code, payload) triples,
// sorted ascending by (type_code, field_code) on Finish, and each field is
// emitted as a single tag byte followed by its raw big-endian payload. The
// same set of fields always produces the same bytes regardless of the order
// they were added in. Ledger header hashes (ledger.Ledger.ComputeHash) are
// built from a fixed field concatenation and do not go through this package.
package serializer

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/SMC17/rippled-zig-sub000/types"
	"github.com/SMC17/rippled-zig-sub000/xrpcrypto"
)

// TypeCode identifies the wire shape of a field's payload.
type TypeCode byte

// Supported type codes, fixed by §4.1. AccountID deliberately reuses a code
// (0x80) that conflicts with the real XRPL wire format — see §9 design note
// (c); this is preserved intentionally to reproduce the stated test vectors
// and must not be "fixed" to match any real network.
const (
	TypeUInt16    TypeCode = 0x10
	TypeUInt32    TypeCode = 0x20
	TypeHash256   TypeCode = 0x50
	TypeUInt64    TypeCode = 0x60
	TypeVL        TypeCode = 0x70
	TypeAccountID TypeCode = 0x80
)

type field struct {
	typeCode  TypeCode
	fieldCode byte
	payload   []byte
}

// Serializer accumulates typed fields and produces canonical bytes.
type Serializer struct {
	fields []field
}

// New returns an empty Serializer.
func New() *Serializer {
	return &Serializer{}
}

func (s *Serializer) add(tc TypeCode, fieldCode byte, payload []byte) *Serializer {
	s.fields = append(s.fields, field{typeCode: tc, fieldCode: fieldCode, payload: payload})
	return s
}

// AddUInt16 adds a 2-byte big-endian unsigned field.
func (s *Serializer) AddUInt16(fieldCode byte, v uint16) *Serializer {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, v)
	return s.add(TypeUInt16, fieldCode, buf)
}

// AddUInt32 adds a 4-byte big-endian unsigned field.
func (s *Serializer) AddUInt32(fieldCode byte, v uint32) *Serializer {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, v)
	return s.add(TypeUInt32, fieldCode, buf)
}

// AddUInt64 adds an 8-byte big-endian unsigned field.
func (s *Serializer) AddUInt64(fieldCode byte, v uint64) *Serializer {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return s.add(TypeUInt64, fieldCode, buf)
}

// AddHash256 adds a 32-byte digest field.
func (s *Serializer) AddHash256(fieldCode byte, h types.Hash256) *Serializer {
	buf := make([]byte, 32)
	copy(buf, h[:])
	return s.add(TypeHash256, fieldCode, buf)
}

// AddAccountID adds a 20-byte account identifier field, with no length
// prefix (see the type-code note above).
func (s *Serializer) AddAccountID(fieldCode byte, a types.AccountID) *Serializer {
	buf := make([]byte, 20)
	copy(buf, a[:])
	return s.add(TypeAccountID, fieldCode, buf)
}

// AddVL adds a variable-length field; EncodeVL frames its length.
func (s *Serializer) AddVL(fieldCode byte, raw []byte) *Serializer {
	return s.add(TypeVL, fieldCode, EncodeVL(raw))
}

// EncodeVL prepends the variable-length framing prefix defined by §4.1 to
// raw, returning the framed bytes (prefix ‖ raw).
func EncodeVL(raw []byte) []byte {
	n := len(raw)
	var prefix []byte
	switch {
	case n <= 192:
		prefix = []byte{byte(n)}
	case n <= 12480:
		n2 := n - 193
		prefix = []byte{byte(193 + n2/256), byte(n2 % 256)}
	case n <= 918744:
		n2 := n - 12481
		prefix = []byte{byte(241 + n2/65536), byte((n2 / 256) % 256), byte(n2 % 256)}
	default:
		panic(fmt.Sprintf("serializer: VL payload too large: %d bytes", n))
	}
	out := make([]byte, 0, len(prefix)+n)
	out = append(out, prefix...)
	out = append(out, raw...)
	return out
}

// Finish sorts the accumulated fields ascending by (type_code, field_code)
// and emits, for each, a tag byte equal to type_code | (field_code & 0x0F)
// followed by the raw payload.
func (s *Serializer) Finish() []byte {
	sorted := make([]field, len(s.fields))
	copy(sorted, s.fields)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].typeCode != sorted[j].typeCode {
			return sorted[i].typeCode < sorted[j].typeCode
		}
		return sorted[i].fieldCode < sorted[j].fieldCode
	})

	var out []byte
	for _, f := range sorted {
		tag := byte(f.typeCode) | (f.fieldCode & 0x0F)
		out = append(out, tag)
		out = append(out, f.payload...)
	}
	return out
}

// FinishHash is a convenience for Finish followed by SHA-512-Half.
func (s *Serializer) FinishHash() types.Hash256 {
	return xrpcrypto.Sha512Half(s.Finish())
}
