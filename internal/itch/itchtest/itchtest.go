// Package itchtest builds synthetic ITCH 5.0 payloads and captures for
// tests. Layouts match the production views; sizes are the ITCH 5.0 wire
// sizes for each type.
package itchtest

import "encoding/binary"

func header(size int, typ byte, ts uint64) []byte {
	b := make([]byte, size)
	b[0] = typ
	binary.BigEndian.PutUint16(b[5:], uint16(ts>>32))
	binary.BigEndian.PutUint32(b[7:], uint32(ts))
	return b
}

func putStock(b []byte, stock string) {
	for i := 0; i < 8; i++ {
		if i < len(stock) {
			b[i] = stock[i]
		} else {
			b[i] = ' '
		}
	}
}

// SystemEvent builds an 'S' payload.
func SystemEvent(ts uint64, code byte) []byte {
	b := header(12, 'S', ts)
	b[11] = code
	return b
}

// AddOrder builds an 'A' payload. price is in 1/10,000 USD.
func AddOrder(ts, ref uint64, side byte, shares uint32, stock string, price uint32) []byte {
	b := header(36, 'A', ts)
	binary.BigEndian.PutUint64(b[11:], ref)
	b[19] = side
	binary.BigEndian.PutUint32(b[20:], shares)
	putStock(b[24:32], stock)
	binary.BigEndian.PutUint32(b[32:], price)
	return b
}

// AddOrderMPID builds an 'F' payload: an AddOrder plus the attribution.
func AddOrderMPID(ts, ref uint64, side byte, shares uint32, stock string, price uint32, attribution string) []byte {
	b := make([]byte, 40)
	copy(b, AddOrder(ts, ref, side, shares, stock, price))
	b[0] = 'F'
	for i := 0; i < 4; i++ {
		if i < len(attribution) {
			b[36+i] = attribution[i]
		} else {
			b[36+i] = ' '
		}
	}
	return b
}

// OrderExecuted builds an 'E' payload.
func OrderExecuted(ts, ref uint64, shares uint32, match uint64) []byte {
	b := header(31, 'E', ts)
	binary.BigEndian.PutUint64(b[11:], ref)
	binary.BigEndian.PutUint32(b[19:], shares)
	binary.BigEndian.PutUint64(b[23:], match)
	return b
}

// OrderExecutedWithPrice builds a 'C' payload.
func OrderExecutedWithPrice(ts, ref uint64, shares uint32, match uint64, printable byte, price uint32) []byte {
	b := header(36, 'C', ts)
	binary.BigEndian.PutUint64(b[11:], ref)
	binary.BigEndian.PutUint32(b[19:], shares)
	binary.BigEndian.PutUint64(b[23:], match)
	b[31] = printable
	binary.BigEndian.PutUint32(b[32:], price)
	return b
}

// OrderCancel builds an 'X' payload.
func OrderCancel(ts, ref uint64, shares uint32) []byte {
	b := header(23, 'X', ts)
	binary.BigEndian.PutUint64(b[11:], ref)
	binary.BigEndian.PutUint32(b[19:], shares)
	return b
}

// OrderDelete builds a 'D' payload.
func OrderDelete(ts, ref uint64) []byte {
	b := header(19, 'D', ts)
	binary.BigEndian.PutUint64(b[11:], ref)
	return b
}

// OrderReplace builds a 'U' payload.
func OrderReplace(ts, origRef, newRef uint64, shares uint32, price uint32) []byte {
	b := header(35, 'U', ts)
	binary.BigEndian.PutUint64(b[11:], origRef)
	binary.BigEndian.PutUint64(b[19:], newRef)
	binary.BigEndian.PutUint32(b[27:], shares)
	binary.BigEndian.PutUint32(b[31:], price)
	return b
}

// Trade builds a non-cross 'P' payload.
func Trade(ts, ref uint64, side byte, shares uint32, stock string, price uint32, match uint64) []byte {
	b := header(44, 'P', ts)
	binary.BigEndian.PutUint64(b[11:], ref)
	b[19] = side
	binary.BigEndian.PutUint32(b[20:], shares)
	putStock(b[24:32], stock)
	binary.BigEndian.PutUint32(b[32:], price)
	binary.BigEndian.PutUint64(b[36:], match)
	return b
}

// BrokenTrade builds a 'B' payload.
func BrokenTrade(ts, match uint64) []byte {
	b := header(19, 'B', ts)
	binary.BigEndian.PutUint64(b[11:], match)
	return b
}

// Capture frames the payloads into a length-prefixed stream.
func Capture(payloads ...[]byte) []byte {
	var out []byte
	for _, p := range payloads {
		out = append(out, byte(len(p)>>8), byte(len(p)))
		out = append(out, p...)
	}
	return out
}
