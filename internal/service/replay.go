// Package service owns the replay loop: pulling frames from the reader and
// handing them to the engine in file order.
package service

import (
	"context"
	"log/slog"

	"itch_go/internal/engine"
	"itch_go/internal/itch"
)

// progressEvery is the message interval between progress log lines.
const progressEvery = 10_000_000

// Replayer drives one sequential pass over a capture. Processing is strictly
// in order with no batching or reorder; each message is fully handled,
// including chain-walk re-reads and report I/O, before the next is pulled.
type Replayer struct {
	reader  *itch.MessageReader
	handler *engine.MessageHandler
}

// NewReplayer wires a reader to a handler.
func NewReplayer(reader *itch.MessageReader, handler *engine.MessageHandler) *Replayer {
	return &Replayer{reader: reader, handler: handler}
}

// Run replays the capture until end of stream or cancellation, then flushes
// the final report. Returns the context error on cancellation.
func (r *Replayer) Run(ctx context.Context) error {
	// The final hour reports even when the run is cut short.
	defer r.handler.Flush()

	var processed uint64
	for {
		// Polling the context per message would dominate the hot loop.
		if processed&0xFFFF == 0 && ctx.Err() != nil {
			slog.Warn("replay cancelled", slog.Uint64("messages", processed))
			return ctx.Err()
		}

		msg, ok := r.reader.Next()
		if !ok {
			break
		}
		r.handler.HandleMessage(msg)

		processed++
		if processed%progressEvery == 0 {
			slog.Info("replay progress",
				slog.Uint64("messages", processed),
				slog.Int("live_orders", r.handler.IndexedOrders()))
		}
	}

	slog.Info("replay complete", slog.Uint64("messages", processed))
	return nil
}
