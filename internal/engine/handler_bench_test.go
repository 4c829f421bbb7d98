package engine

import (
	"io"
	"testing"

	"itch_go/internal/infra"
	"itch_go/internal/itch"
	"itch_go/internal/itch/itchtest"
)

// benchCapture interleaves adds, replaces, executions, and deletes over a
// rotating set of symbols, roughly the mix of a real session.
func benchCapture(orders int) []byte {
	symbols := []string{"AAPL", "MSFT", "GOOG", "AMZN", "TSLA", "NVDA", "META", "IBM"}
	var payloads [][]byte
	for i := 0; i < orders; i++ {
		ref := uint64(i)*2 + 1
		sym := symbols[i%len(symbols)]
		payloads = append(payloads,
			itchtest.AddOrder(0, ref, 'B', 100, sym, uint32(1_000_000+i%500_000)),
			itchtest.OrderReplace(0, ref, ref+1, 50, uint32(1_010_000+i%500_000)),
			itchtest.OrderExecuted(0, ref+1, 50, uint64(i)),
			itchtest.OrderDelete(0, ref+1),
		)
	}
	return itchtest.Capture(payloads...)
}

func BenchmarkHandler_HandleMessage(b *testing.B) {
	capture := benchCapture(25_000)
	reader := itch.NewFromBytes(capture)
	reporter := NewReporter(b.TempDir(), io.Discard, nil, nil, &infra.Metrics{})

	var messages []itch.Message
	for {
		msg, ok := reader.Next()
		if !ok {
			break
		}
		messages = append(messages, msg)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h := NewMessageHandler(reader, reporter, &infra.Metrics{})
		for _, msg := range messages {
			h.HandleMessage(msg)
		}
	}
}

func BenchmarkReader_Next(b *testing.B) {
	capture := benchCapture(25_000)

	b.SetBytes(int64(len(capture)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reader := itch.NewFromBytes(capture)
		for {
			if _, ok := reader.Next(); !ok {
				break
			}
		}
	}
}
