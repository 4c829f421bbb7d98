package itch

import (
	"encoding/binary"

	"github.com/shopspring/decimal"
)

// Big-endian field readers. ITCH integers are unsigned big-endian; the
// 48-bit timestamp is the only width encoding/binary does not cover
// directly.

func be16(b []byte) uint16 {
	return binary.BigEndian.Uint16(b)
}

func be32(b []byte) uint32 {
	return binary.BigEndian.Uint32(b)
}

func be48(b []byte) uint64 {
	return uint64(be16(b))<<32 | uint64(be32(b[2:]))
}

func be64(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}

// price decodes a 4-byte price field. The wire unit is 1/10,000 of a
// dollar, so the decimal carries exponent -4 and sums stay exact.
func price(b []byte) decimal.Decimal {
	return decimal.New(int64(be32(b)), -4)
}
