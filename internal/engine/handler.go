// Package engine reconstructs order lifecycles from an ITCH capture and
// folds every reportable execution into per-symbol VWAP aggregates.
package engine

import (
	"log/slog"

	"itch_go/internal/domain"
	"itch_go/internal/infra"
	"itch_go/internal/itch"
)

// ReportPeriod is the wall-clock span each report closes over.
const ReportPeriod = itch.HourNanos

// MessageHandler is the core single-threaded message processor. It owns the
// order index (reference → file offset), the per-symbol aggregates, and the
// report clock. HandleMessage MUST be called from one goroutine, in file
// order: the engine's state after any prefix is a pure function of that
// prefix, and replays depend on it.
//
// The index stores offsets, not decoded orders: an execution re-reads the
// defining add or replace message from the mapping on demand. That trades a
// cold re-read per execution for not holding tens of millions of decoded
// orders in memory.
type MessageHandler struct {
	reader   *itch.MessageReader
	reporter *Reporter
	metrics  *infra.Metrics

	orders         map[uint64]int64
	stocks         map[itch.Stock]*domain.VolumePrice
	lastReportTime itch.Timestamp
}

// NewMessageHandler creates a handler reading chain predecessors through
// reader and emitting reports through reporter. A nil metrics uses the
// global instance.
func NewMessageHandler(reader *itch.MessageReader, reporter *Reporter, metrics *infra.Metrics) *MessageHandler {
	if metrics == nil {
		metrics = infra.GlobalMetrics
	}
	return &MessageHandler{
		reader:   reader,
		reporter: reporter,
		metrics:  metrics,
		// A full session holds tens of millions of live orders.
		orders: make(map[uint64]int64, 1<<20),
		stocks: make(map[itch.Stock]*domain.VolumePrice),
	}
}

// HandleMessage processes one message: first the report clock, then the
// type dispatch. Lifecycle errors are diagnostics, never fatal — a long
// replay finishes with gaps rather than aborting.
func (h *MessageHandler) HandleMessage(m itch.Message) {
	ts := m.Timestamp()
	h.maybeReport(ts)
	h.metrics.RecordMessage()

	switch m.Type() {
	case itch.TypeSystemEvent:
		sub := itch.SystemMessage{Message: m}
		h.reporter.LogSystemEvent(ts, sub.EventType())
		h.metrics.RecordSystemEvent()

	case itch.TypeAddOrder, itch.TypeAddOrderMPIDAttribution:
		sub := itch.AddOrderMessage{Message: m}
		// References are session-unique; an existing entry is overwritten.
		h.orders[sub.OrderReference()] = m.Offset()
		h.metrics.RecordOrderAdded()

	case itch.TypeOrderExecuted:
		sub := itch.OrderExecutedMessage{Message: m}
		ref := sub.OrderReference()
		order, err := h.constructOrder(ref)
		if err != nil {
			slog.Warn("dropping execution", slog.Any("error", err))
			h.metrics.RecordConstructFailure()
			break
		}
		h.executeOrder(domain.Execution{
			Reference: order.Reference,
			Side:      order.Side,
			Shares:    sub.Shares(),
			Match:     sub.MatchNumber(),
			Stock:     order.Stock,
			Price:     order.Price,
		})

	case itch.TypeOrderExecutedWithPrice:
		sub := itch.OrderExecutedWithPriceMessage{OrderExecutedMessage: itch.OrderExecutedMessage{Message: m}}
		// Non-printable prints must not count toward VWAP.
		if sub.Printable() != itch.PrintableYes {
			break
		}
		ref := sub.OrderReference()
		order, err := h.constructOrder(ref)
		if err != nil {
			slog.Warn("dropping execution", slog.Any("error", err))
			h.metrics.RecordConstructFailure()
			break
		}
		h.executeOrder(domain.Execution{
			Reference: order.Reference,
			Side:      order.Side,
			Shares:    sub.Shares(),
			Match:     sub.MatchNumber(),
			Stock:     order.Stock,
			Price:     sub.Price(),
		})

	case itch.TypeOrderReplace:
		sub := itch.OrderReplaceMessage{Message: m}
		// The original entry stays live: the chain walk resolves every
		// predecessor through the index. Entries are reclaimed on delete.
		if _, ok := h.orders[sub.OriginalReference()]; ok {
			h.orders[sub.NewReference()] = m.Offset()
			h.metrics.RecordOrderReplaced()
		}

	case itch.TypeOrderDelete:
		sub := itch.OrderDeleteMessage{Message: m}
		delete(h.orders, sub.OrderReference())
		h.metrics.RecordOrderDeleted()

	case itch.TypeOrderCancel:
		// Partial cancels only shrink remaining shares, which the index does
		// not track; symbol and price are untouched.

	case itch.TypeTrade:
		sub := itch.TradeMessage{Message: m}
		// Trades carry everything on the wire and never touch the index; the
		// reference number is only meaningful server-side.
		h.executeOrder(domain.Execution{
			Reference: sub.OrderReference(),
			Side:      sub.Side(),
			Shares:    sub.Shares(),
			Match:     sub.MatchNumber(),
			Stock:     sub.Stock(),
			Price:     sub.Price(),
		})

	case itch.TypeBrokenTrade:
		// Ignored. NQTVITCH: a feed consumer building only a book may skip
		// broken-trade messages.

	default:
		// Unused or unknown message types.
	}
}

// constructOrder rebuilds the resting order behind ref by re-reading its
// defining message and walking any replace chain back to the originating
// add. The walk is iterative and bounded by the live index size, so a
// corrupt capture's reference cycle surfaces as a broken chain instead of
// a hang.
func (h *MessageHandler) constructOrder(ref uint64) (domain.Order, error) {
	offset, ok := h.orders[ref]
	if !ok {
		return domain.Order{}, &domain.ConstructError{Ref: ref, Err: domain.ErrOrderNotFound}
	}
	last, ok := h.reader.ReadAt(offset)
	if !ok {
		return domain.Order{}, &domain.ConstructError{Ref: ref, Err: domain.ErrBrokenChain}
	}

	cur := last
	for steps := 0; cur.Type() == itch.TypeOrderReplace; steps++ {
		rep := itch.OrderReplaceMessage{Message: cur}
		orig := rep.OriginalReference()
		if orig == rep.NewReference() || steps > len(h.orders) {
			return domain.Order{}, &domain.ConstructError{Ref: ref, Err: domain.ErrBrokenChain}
		}
		off, ok := h.orders[orig]
		if !ok {
			return domain.Order{}, &domain.ConstructError{Ref: ref, Err: domain.ErrBrokenChain}
		}
		if cur, ok = h.reader.ReadAt(off); !ok {
			return domain.Order{}, &domain.ConstructError{Ref: ref, Err: domain.ErrBrokenChain}
		}
	}

	if t := cur.Type(); t != itch.TypeAddOrder && t != itch.TypeAddOrderMPIDAttribution {
		return domain.Order{}, &domain.ConstructError{Ref: ref, Err: domain.ErrUnexpectedType}
	}

	add := itch.AddOrderMessage{Message: cur}
	order := domain.Order{
		Reference: ref,
		Side:      add.Side(),
		Shares:    add.Shares(),
		Stock:     add.Stock(),
		Price:     add.Price(),
	}
	// A replaced order keeps symbol and side from the originating add; the
	// head replace supplies reference, remaining shares, and limit price.
	if last.Type() == itch.TypeOrderReplace {
		rep := itch.OrderReplaceMessage{Message: last}
		order.Reference = rep.NewReference()
		order.Shares = rep.Shares()
		order.Price = rep.Price()
	}
	return order, nil
}

func (h *MessageHandler) executeOrder(e domain.Execution) {
	vp := h.stocks[e.Stock]
	if vp == nil {
		vp = &domain.VolumePrice{}
		h.stocks[e.Stock] = vp
	}
	vp.Fold(e)
	h.metrics.RecordExecution()
}

// maybeReport advances the report clock and snapshots the aggregates when
// currentTime crosses into a new report period. The clock only moves
// forward and always lands on a period boundary.
func (h *MessageHandler) maybeReport(currentTime itch.Timestamp) {
	if len(h.stocks) == 0 || uint64(currentTime) < uint64(h.lastReportTime)+ReportPeriod {
		return
	}

	floored := itch.Timestamp(uint64(currentTime) / ReportPeriod * ReportPeriod)
	if floored > h.lastReportTime {
		h.lastReportTime = floored
	}
	// The file is named for the completed hour: the report triggered by the
	// first message past 10:00 snapshots the hour that began at 09:00.
	hour := uint64(h.lastReportTime)/ReportPeriod - 1

	if err := h.reporter.Report(currentTime, hour, h.stocks); err != nil {
		slog.Error("report failed", slog.Uint64("hour", hour), slog.Any("error", err))
		h.metrics.RecordError()
		return
	}
	h.metrics.RecordReport()
}

// Flush emits the report for the final, possibly partial hour. Call it once
// after the last frame; a stream ending mid-hour files under the next hour
// index.
func (h *MessageHandler) Flush() {
	h.maybeReport(h.lastReportTime + itch.Timestamp(ReportPeriod))
}

// LastReportTime returns the report clock (external read, for tests and
// invariant checks).
func (h *MessageHandler) LastReportTime() itch.Timestamp {
	return h.lastReportTime
}

// Aggregate returns a copy of a symbol's accumulator.
func (h *MessageHandler) Aggregate(s itch.Stock) (domain.VolumePrice, bool) {
	vp, ok := h.stocks[s]
	if !ok {
		return domain.VolumePrice{}, false
	}
	return *vp, true
}

// IndexedOrders returns the live order-index size.
func (h *MessageHandler) IndexedOrders() int {
	return len(h.orders)
}

// OrderOffset returns the indexed offset for ref, if present.
func (h *MessageHandler) OrderOffset(ref uint64) (int64, bool) {
	off, ok := h.orders[ref]
	return off, ok
}
