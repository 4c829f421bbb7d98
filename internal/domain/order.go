package domain

import (
	"github.com/shopspring/decimal"

	"itch_go/internal/itch"
)

// Order is a resting limit order reconstructed on demand from the capture.
// It is never stored; the index keeps only file offsets and the engine
// rebuilds the order at execution time by re-reading the defining message.
type Order struct {
	Reference uint64
	Side      itch.Side
	Shares    uint32
	Stock     itch.Stock
	Price     decimal.Decimal
}

// Execution is one reportable fill, either derived from an order-executed
// message plus a reconstructed order, or taken verbatim from a non-cross
// trade message.
type Execution struct {
	Reference uint64
	Side      itch.Side
	Shares    uint32
	Match     uint64
	Stock     itch.Stock
	Price     decimal.Decimal
}

// Notional returns shares x price as an exact decimal.
func (e Execution) Notional() decimal.Decimal {
	return e.Price.Mul(decimal.NewFromInt(int64(e.Shares)))
}

// VolumePrice accumulates a symbol's session-to-date executed volume and
// notional. It only ever grows; hourly reports snapshot it without reset.
type VolumePrice struct {
	Volume   uint64
	Notional decimal.Decimal
}

// Fold adds one execution to the accumulator.
func (v *VolumePrice) Fold(e Execution) {
	v.Volume += uint64(e.Shares)
	v.Notional = v.Notional.Add(e.Notional())
}

// VWAP returns Notional/Volume, or zero when nothing has traded.
func (v VolumePrice) VWAP() decimal.Decimal {
	if v.Volume == 0 {
		return decimal.Zero
	}
	return v.Notional.Div(decimal.NewFromInt(int64(v.Volume)))
}
