package itch

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Message is an immutable borrowed window over one payload plus the byte
// offset of its frame within the capture. The window aliases the reader's
// mapping, so the reader must outlive every view.
//
// Accessors do not validate: asking for a field the payload's type does not
// define reads garbage (or panics on a short payload). Callers dispatch on
// Type first and wrap the view in the matching typed view.
type Message struct {
	raw    []byte
	offset int64
}

// NewMessage wraps a payload slice. offset is the frame's position in the
// capture, used to index orders for later re-reads.
func NewMessage(raw []byte, offset int64) Message {
	return Message{raw: raw, offset: offset}
}

// Offset returns the frame's byte position within the capture.
func (m Message) Offset() int64 {
	return m.offset
}

// Length returns the payload length in bytes.
func (m Message) Length() int {
	return len(m.raw)
}

func (m Message) Type() MessageType {
	return MessageType(m.raw[0])
}

func (m Message) StockLocate() uint16 {
	return be16(m.raw[1:])
}

func (m Message) TrackingNumber() uint16 {
	return be16(m.raw[3:])
}

func (m Message) Timestamp() Timestamp {
	return Timestamp(be48(m.raw[5:]))
}

func (m Message) String() string {
	return fmt.Sprintf("%db: %c | %04x | %04x | %s",
		m.Length(), m.Type(), m.StockLocate(), m.TrackingNumber(), m.Timestamp())
}

// SystemMessage is a SystemEvent ('S') view.
type SystemMessage struct {
	Message
}

func (m SystemMessage) EventType() SystemEventType {
	return SystemEventType(m.raw[11])
}

func (m SystemMessage) String() string {
	return fmt.Sprintf("%s | %c", m.Message, m.EventType())
}

// AddOrderMessage is an AddOrder ('A') view. AddOrderMPIDAttribution ('F')
// shares the layout and extends it with the attribution field.
type AddOrderMessage struct {
	Message
}

func (m AddOrderMessage) OrderReference() uint64 {
	return be64(m.raw[11:])
}

func (m AddOrderMessage) Side() Side {
	return Side(m.raw[19])
}

func (m AddOrderMessage) Shares() uint32 {
	return be32(m.raw[20:])
}

func (m AddOrderMessage) Stock() Stock {
	return Stock(m.raw[24:32])
}

func (m AddOrderMessage) Price() decimal.Decimal {
	return price(m.raw[32:])
}

func (m AddOrderMessage) String() string {
	return fmt.Sprintf("%s | %d | %c | %d | %s | %s",
		m.Message, m.OrderReference(), m.Side(), m.Shares(), m.Stock(), m.Price())
}

// AddOrderMPIDAttributionMessage is an AddOrderMPIDAttribution ('F') view.
type AddOrderMPIDAttributionMessage struct {
	AddOrderMessage
}

// Attribution returns the 4-character market participant identifier.
func (m AddOrderMPIDAttributionMessage) Attribution() string {
	return string(m.raw[36:40])
}

func (m AddOrderMPIDAttributionMessage) String() string {
	return fmt.Sprintf("%s | %s", m.AddOrderMessage, m.Attribution())
}

// OrderExecutedMessage is an OrderExecuted ('E') view. The executed order's
// symbol and price are not on the wire; they are reconstructed from the
// referenced add (possibly through a replace chain).
type OrderExecutedMessage struct {
	Message
}

func (m OrderExecutedMessage) OrderReference() uint64 {
	return be64(m.raw[11:])
}

func (m OrderExecutedMessage) Shares() uint32 {
	return be32(m.raw[19:])
}

func (m OrderExecutedMessage) MatchNumber() uint64 {
	return be64(m.raw[23:])
}

func (m OrderExecutedMessage) String() string {
	return fmt.Sprintf("%s | %d | %d | %d",
		m.Message, m.OrderReference(), m.Shares(), m.MatchNumber())
}

// OrderExecutedWithPriceMessage is an OrderExecutedWithPrice ('C') view.
type OrderExecutedWithPriceMessage struct {
	OrderExecutedMessage
}

func (m OrderExecutedWithPriceMessage) Printable() Printable {
	return Printable(m.raw[31])
}

func (m OrderExecutedWithPriceMessage) Price() decimal.Decimal {
	return price(m.raw[32:])
}

func (m OrderExecutedWithPriceMessage) String() string {
	return fmt.Sprintf("%s | %c | %s", m.OrderExecutedMessage, m.Printable(), m.Price())
}

// OrderCancelMessage is an OrderCancel ('X') view. Cancels shrink a resting
// order; they never change its symbol or price.
type OrderCancelMessage struct {
	Message
}

func (m OrderCancelMessage) OrderReference() uint64 {
	return be64(m.raw[11:])
}

func (m OrderCancelMessage) CancelledShares() uint32 {
	return be32(m.raw[19:])
}

// OrderDeleteMessage is an OrderDelete ('D') view.
type OrderDeleteMessage struct {
	Message
}

func (m OrderDeleteMessage) OrderReference() uint64 {
	return be64(m.raw[11:])
}

// OrderReplaceMessage is an OrderReplace ('U') view: an atomic cancel+add
// that assigns a new reference, size, and price while keeping symbol and
// side from the chain's originating add.
type OrderReplaceMessage struct {
	Message
}

func (m OrderReplaceMessage) OriginalReference() uint64 {
	return be64(m.raw[11:])
}

func (m OrderReplaceMessage) NewReference() uint64 {
	return be64(m.raw[19:])
}

func (m OrderReplaceMessage) Shares() uint32 {
	return be32(m.raw[27:])
}

func (m OrderReplaceMessage) Price() decimal.Decimal {
	return price(m.raw[31:])
}

func (m OrderReplaceMessage) String() string {
	return fmt.Sprintf("%s | %d | %d | %d | %s",
		m.Message, m.OriginalReference(), m.NewReference(), m.Shares(), m.Price())
}

// TradeMessage is a non-cross Trade ('P') view. The reference number it
// carries is only meaningful server-side; book consumers do not index it.
type TradeMessage struct {
	Message
}

func (m TradeMessage) OrderReference() uint64 {
	return be64(m.raw[11:])
}

func (m TradeMessage) Side() Side {
	return Side(m.raw[19])
}

func (m TradeMessage) Shares() uint32 {
	return be32(m.raw[20:])
}

func (m TradeMessage) Stock() Stock {
	return Stock(m.raw[24:32])
}

func (m TradeMessage) Price() decimal.Decimal {
	return price(m.raw[32:])
}

func (m TradeMessage) MatchNumber() uint64 {
	return be64(m.raw[36:])
}

func (m TradeMessage) String() string {
	return fmt.Sprintf("%s | %d | %c | %d | %s | %s | %d",
		m.Message, m.OrderReference(), m.Side(), m.Shares(), m.Stock(), m.Price(), m.MatchNumber())
}

// BrokenTradeMessage is a BrokenTrade ('B') view. Book-only consumers may
// ignore these entirely.
type BrokenTradeMessage struct {
	Message
}

func (m BrokenTradeMessage) MatchNumber() uint64 {
	return be64(m.raw[11:])
}

func (m BrokenTradeMessage) String() string {
	return fmt.Sprintf("%s | %d", m.Message, m.MatchNumber())
}
