// Package itch decodes NASDAQ TotalView-ITCH 5.0 binary captures.
//
// A capture is a contiguous stream of (u16 big-endian length)(payload)
// records. Payloads are fixed-layout messages whose first byte is the type
// code. Views over payloads are zero-copy: accessors read straight from the
// mapped region and nothing is cached or validated.
package itch

// MessageType is the leading byte of every payload.
type MessageType byte

const (
	TypeSystemEvent             MessageType = 'S'
	TypeStockDirectory          MessageType = 'R'
	TypeStockTradingAction      MessageType = 'H'
	TypeRegSHORestriction       MessageType = 'Y'
	TypeMarketParticipantPos    MessageType = 'L'
	TypeMWCBDeclineLevel        MessageType = 'V'
	TypeMWCBStatus              MessageType = 'W'
	TypeIPOQuotingPeriodUpdate  MessageType = 'K'
	TypeLULDAuctionCollar       MessageType = 'J'
	TypeOperationalHalt         MessageType = 'h'
	TypeAddOrder                MessageType = 'A'
	TypeAddOrderMPIDAttribution MessageType = 'F'
	TypeOrderExecuted           MessageType = 'E'
	TypeOrderExecutedWithPrice  MessageType = 'C'
	TypeOrderCancel             MessageType = 'X'
	TypeOrderDelete             MessageType = 'D'
	TypeOrderReplace            MessageType = 'U'
	TypeTrade                   MessageType = 'P'
	TypeCrossTrade              MessageType = 'Q'
	TypeBrokenTrade             MessageType = 'B'
	TypeNOII                    MessageType = 'I'
	TypeRetailInterest          MessageType = 'N'
	TypeDLCRPriceDiscovery      MessageType = 'O'
)

// SystemEventType is the event code of a SystemEvent ('S') message.
type SystemEventType byte

const (
	EventStartMessages    SystemEventType = 'O'
	EventStartSystemHours SystemEventType = 'S'
	EventStartMarketHours SystemEventType = 'Q'
	EventEndMarketHours   SystemEventType = 'M'
	EventEndSystemHours   SystemEventType = 'E'
	EventEndMessages      SystemEventType = 'C'
)

// Description returns the human-readable name of the event code.
func (e SystemEventType) Description() string {
	switch e {
	case EventStartMessages:
		return "Start of Messages"
	case EventStartSystemHours:
		return "Start of System hours"
	case EventStartMarketHours:
		return "Start of Market hours"
	case EventEndMarketHours:
		return "End of Market hours"
	case EventEndSystemHours:
		return "End of System hours"
	case EventEndMessages:
		return "End of Messages"
	}
	return "Unknown system event"
}

// Side is the buy/sell indicator on add-order and trade messages.
type Side byte

const (
	SideBuy  Side = 'B'
	SideSell Side = 'S'
)

// Printable marks whether a priced execution counts toward public statistics.
type Printable byte

const (
	PrintableYes Printable = 'Y'
	PrintableNo  Printable = 'N'
)

// Stock is the raw 8-character, right-space-padded symbol field.
// It is comparable bytewise, trailing spaces included, so it can key maps
// without allocating.
type Stock [8]byte

// StockFromString right-pads s with spaces into a Stock. Inputs longer than
// eight characters are truncated.
func StockFromString(s string) Stock {
	var st Stock
	for i := range st {
		if i < len(s) {
			st[i] = s[i]
		} else {
			st[i] = ' '
		}
	}
	return st
}

func (s Stock) String() string {
	return string(s[:])
}
